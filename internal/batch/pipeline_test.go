package batch

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/segmentio/parquet-go"

	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
)

type sliceReader struct {
	records []Record
	pos     int
}

func (r *sliceReader) Read() (Record, error) {
	if r.pos >= len(r.records) {
		return Record{}, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *sliceReader) Close() error { return nil }

type sliceWriter struct {
	results []Result
}

func (w *sliceWriter) Write(r Result) error {
	w.results = append(w.results, r)
	return nil
}

func (w *sliceWriter) Close() error { return nil }

func newTestPipeline(cfg Config) *Pipeline {
	if cfg.Options == (humanize.Options{}) {
		cfg.Options = humanize.Options{Style: humanize.StyleFormal, Variability: humanize.VariabilityLow}
	}
	return NewPipeline(humanize.New(), &cfg, nil)
}

const negation = "这不仅仅是创新更是发展"

func TestProcessKeepsInputOrder(t *testing.T) {
	var records []Record
	for i := 0; i < 25; i++ {
		records = append(records, Record{ID: fmt.Sprint(i), Text: negation})
	}
	w := &sliceWriter{}
	p := newTestPipeline(Config{BatchSize: 7, WorkerCount: 4, SkipEmpty: true})

	res, err := p.Process(context.Background(), &sliceReader{records: records}, w)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.TotalRecords != 25 || res.Processed != 25 {
		t.Fatalf("result = %+v", res)
	}
	for i, r := range w.results {
		if r.ID != fmt.Sprint(i) {
			t.Fatalf("result %d has id %s", i, r.ID)
		}
		if r.Humanized != "这不只是创新，更是发展" {
			t.Errorf("record %s: humanized %q", r.ID, r.Humanized)
		}
	}
}

func TestProcessSkipsEmptyText(t *testing.T) {
	w := &sliceWriter{}
	p := newTestPipeline(Config{BatchSize: 10, WorkerCount: 2, SkipEmpty: true})
	records := []Record{{ID: "a", Text: "你好。"}, {ID: "b", Text: "  "}, {ID: "c", Text: ""}}

	res, err := p.Process(context.Background(), &sliceReader{records: records}, w)
	if err != nil {
		t.Fatal(err)
	}
	if res.RecordsInvalid != 2 || res.Processed != 1 || len(w.results) != 1 {
		t.Fatalf("result = %+v, written %d", res, len(w.results))
	}
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestPipeline(Config{BatchSize: 1, WorkerCount: 1})
	_, err := p.Process(ctx, &sliceReader{records: []Record{{ID: "1", Text: "甲"}}}, &sliceWriter{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestProcessAppliesPreservation(t *testing.T) {
	w := &sliceWriter{}
	p := newTestPipeline(Config{BatchSize: 5, WorkerCount: 1, Preserve: []string{"综上所述"}})
	records := []Record{{ID: "1", Text: "综上所述，因此很好。"}}

	if _, err := p.Process(context.Background(), &sliceReader{records: records}, w); err != nil {
		t.Fatal(err)
	}
	if got := w.results[0].Humanized; got != "综上所述，所以很好。" {
		t.Fatalf("got %q", got)
	}
}

func TestProcessFileCSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")
	body := "id,text\n1," + negation + "\n2,\n3,今天下雨。\n"
	if err := os.WriteFile(in, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := newTestPipeline(Config{BatchSize: 2, WorkerCount: 3, SkipEmpty: true}).ProcessFile(context.Background(), in, out)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if res.Processed != 2 || res.RecordsInvalid != 1 {
		t.Fatalf("result = %+v", res)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][2] != "humanized" || rows[1][0] != "1" || rows[2][0] != "3" {
		t.Errorf("unexpected rows: %v", rows)
	}
	if rows[1][2] != "这不只是创新，更是发展" || rows[1][7] != "1" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestCSVWithoutIDColumn(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(in, []byte("text\n甲。\n乙。\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := OpenReader(in)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for want := 1; want <= 2; want++ {
		rec, err := r.Read()
		if err != nil {
			t.Fatal(err)
		}
		if rec.ID != fmt.Sprint(want) {
			t.Errorf("id = %s, want %d", rec.ID, want)
		}
	}
}

func TestCSVWithoutTextColumn(t *testing.T) {
	in := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(in, []byte("id,body\n1,甲\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenReader(in); err == nil {
		t.Fatal("expected error for missing text column")
	}
}

func TestProcessFileJSONLines(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jsonl")
	out := filepath.Join(dir, "out.jsonl")
	body := `{"id":"x","text":"` + negation + `"}` + "\n" + `{"text":"此外，研究表明很重要。"}` + "\n"
	if err := os.WriteFile(in, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := newTestPipeline(Config{BatchSize: 10, WorkerCount: 2}).ProcessFile(context.Background(), in, out); err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	var got []Result
	for {
		var r Result
		if err := dec.Decode(&r); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		got = append(got, r)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results", len(got))
	}
	if got[0].ID != "x" || got[0].Signals.NegativeParallelism != 1 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].ID != "2" || got[1].Signals.VagueAttribution != 1 {
		t.Errorf("second = %+v", got[1])
	}
	if got[0].Style != "formal" || got[0].EffectiveVariability != "low" {
		t.Errorf("options not recorded: %+v", got[0])
	}
}

func TestJSONLinesBadRecord(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jsonl")
	if err := os.WriteFile(in, []byte("{\"text\": \"甲\"}\n{oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := newTestPipeline(Config{BatchSize: 10, WorkerCount: 1}).ProcessFile(context.Background(), in, filepath.Join(dir, "out.jsonl"))
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestProcessFileParquet(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.parquet")
	out := filepath.Join(dir, "out.parquet")

	f, err := os.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	w := parquet.NewWriter(f, parquet.SchemaOf(new(Record)))
	for _, rec := range []Record{{ID: "p1", Text: negation}, {ID: "p2", Text: "今天下雨。"}} {
		if err := w.Write(&rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	res, err := newTestPipeline(Config{BatchSize: 10, WorkerCount: 2}).ProcessFile(context.Background(), in, out)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if res.Processed != 2 {
		t.Fatalf("result = %+v", res)
	}

	of, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer of.Close()
	reader := parquet.NewReader(of)
	defer reader.Close()

	var rows []resultRow
	for {
		var row resultRow
		if err := reader.Read(&row); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		rows = append(rows, row)
	}
	if len(rows) != 2 || rows[0].ID != "p1" || rows[1].ID != "p2" {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Humanized != "这不只是创新，更是发展" || rows[0].NegativeParallelism != 1 {
		t.Errorf("row 0 = %+v", rows[0])
	}
}

func TestDetectFileFormat(t *testing.T) {
	tests := map[string]FileFormat{
		"a.csv":     FormatCSV,
		"a.PARQUET": FormatParquet,
		"a.jsonl":   FormatJSON,
		"a.json":    FormatJSON,
		"a.txt":     FormatCSV,
	}
	for name, want := range tests {
		if got := DetectFileFormat(name); got != want {
			t.Errorf("DetectFileFormat(%q) = %s, want %s", name, got, want)
		}
	}
}
