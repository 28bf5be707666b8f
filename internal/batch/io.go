package batch

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/segmentio/parquet-go"
)

// RecordReader yields input records until io.EOF
type RecordReader interface {
	Read() (Record, error)
	Close() error
}

// ResultWriter receives output rows in input order
type ResultWriter interface {
	Write(Result) error
	Close() error
}

// OpenReader opens path with the reader matching its extension
func OpenReader(path string) (RecordReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	var r RecordReader
	switch DetectFileFormat(path) {
	case FormatParquet:
		r = newParquetReader(file)
	case FormatJSON:
		r = newJSONReader(file)
	default:
		r, err = newCSVReader(file)
	}
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// CreateWriter creates path with the writer matching its extension
func CreateWriter(path string) (ResultWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	switch DetectFileFormat(path) {
	case FormatParquet:
		return newParquetWriter(file), nil
	case FormatJSON:
		return newJSONWriter(file), nil
	default:
		w, err := newCSVWriter(file)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// csvReader reads files with a header row holding at least a text column.
// Rows without an id column are numbered from 1.
type csvReader struct {
	file    *os.File
	reader  *csv.Reader
	idCol   int
	textCol int
	row     int
}

func newCSVReader(file *os.File) (*csvReader, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 0 // set by header

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	r := &csvReader{file: file, reader: reader, idCol: -1, textCol: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "id":
			r.idCol = i
		case "text":
			r.textCol = i
		}
	}
	if r.textCol < 0 {
		return nil, fmt.Errorf("CSV header has no text column: %v", header)
	}
	return r, nil
}

func (r *csvReader) Read() (Record, error) {
	fields, err := r.reader.Read()
	if err != nil {
		return Record{}, err
	}
	r.row++

	rec := Record{Text: fields[r.textCol]}
	if r.idCol >= 0 {
		rec.ID = strings.TrimSpace(fields[r.idCol])
	} else {
		rec.ID = strconv.Itoa(r.row)
	}
	return rec, nil
}

func (r *csvReader) Close() error { return r.file.Close() }

// jsonReader reads one JSON object per line
type jsonReader struct {
	file    *os.File
	decoder *json.Decoder
	row     int
}

func newJSONReader(file *os.File) *jsonReader {
	return &jsonReader{file: file, decoder: json.NewDecoder(file)}
}

func (r *jsonReader) Read() (Record, error) {
	var rec Record
	if err := r.decoder.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("failed to decode JSON record %d: %w", r.row+1, err)
	}
	r.row++
	if rec.ID == "" {
		rec.ID = strconv.Itoa(r.row)
	}
	return rec, nil
}

func (r *jsonReader) Close() error { return r.file.Close() }

type parquetReader struct {
	file   *os.File
	reader *parquet.Reader
	row    int
}

func newParquetReader(file *os.File) *parquetReader {
	return &parquetReader{file: file, reader: parquet.NewReader(file)}
}

func (r *parquetReader) Read() (Record, error) {
	var rec Record
	if err := r.reader.Read(&rec); err != nil {
		return Record{}, err
	}
	r.row++
	if rec.ID == "" {
		rec.ID = strconv.Itoa(r.row)
	}
	return rec, nil
}

func (r *parquetReader) Close() error {
	rerr := r.reader.Close()
	ferr := r.file.Close()
	return errors.Join(rerr, ferr)
}

var csvHeader = []string{
	"id", "text", "humanized", "style", "variability", "effective_variability",
	"ai_words", "negative_parallelism", "triple_structure", "excessive_formality",
	"empty_phrase", "exaggeration", "vague_attribution", "length_change",
}

type csvWriter struct {
	file   *os.File
	writer *csv.Writer
}

func newCSVWriter(file *os.File) (*csvWriter, error) {
	w := &csvWriter{file: file, writer: csv.NewWriter(file)}
	if err := w.writer.Write(csvHeader); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	return w, nil
}

func (w *csvWriter) Write(r Result) error {
	row := rowOf(r)
	return w.writer.Write([]string{
		row.ID, row.Text, row.Humanized, row.Style, row.Variability, row.EffectiveVariability,
		strconv.FormatInt(row.AIWords, 10),
		strconv.FormatInt(row.NegativeParallelism, 10),
		strconv.FormatInt(row.TripleStructure, 10),
		strconv.FormatInt(row.ExcessiveFormality, 10),
		strconv.FormatInt(row.EmptyPhrase, 10),
		strconv.FormatInt(row.Exaggeration, 10),
		strconv.FormatInt(row.VagueAttribution, 10),
		strconv.FormatFloat(row.LengthChange, 'f', 1, 64),
	})
}

func (w *csvWriter) Close() error {
	w.writer.Flush()
	ferr := w.writer.Error()
	return errors.Join(ferr, w.file.Close())
}

type jsonWriter struct {
	file    *os.File
	encoder *json.Encoder
}

func newJSONWriter(file *os.File) *jsonWriter {
	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	return &jsonWriter{file: file, encoder: enc}
}

func (w *jsonWriter) Write(r Result) error { return w.encoder.Encode(r) }

func (w *jsonWriter) Close() error { return w.file.Close() }

type parquetWriter struct {
	file   *os.File
	writer *parquet.Writer
}

func newParquetWriter(file *os.File) *parquetWriter {
	return &parquetWriter{
		file:   file,
		writer: parquet.NewWriter(file, parquet.SchemaOf(new(resultRow))),
	}
}

func (w *parquetWriter) Write(r Result) error {
	row := rowOf(r)
	return w.writer.Write(&row)
}

func (w *parquetWriter) Close() error {
	werr := w.writer.Close()
	return errors.Join(werr, w.file.Close())
}
