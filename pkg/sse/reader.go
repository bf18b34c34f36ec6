package sse

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader yields the raw lines of a streaming response body. Lines have
// no length limit: workflow events can carry outputs of many megabytes on a
// single data line. When built with a destination writer, every line is also
// written there verbatim with its newline restored, which lets a caller dump
// the wire traffic while the stream is being consumed.
type LineReader struct {
	reader *bufio.Reader
	dest   io.Writer
}

// NewLineReader returns a LineReader over src.
func NewLineReader(src io.Reader) *LineReader {
	return NewTeeLineReader(src, nil)
}

// NewTeeLineReader returns a LineReader over src that copies every line it
// reads to dest. A nil dest disables the copy.
func NewTeeLineReader(src io.Reader, dest io.Writer) *LineReader {
	return &LineReader{
		reader: bufio.NewReaderSize(src, 64*1024),
		dest:   dest,
	}
}

// Next blocks until the next line is available and returns it without its
// line terminator. It returns io.EOF once the source is exhausted, or the
// underlying read error if the source failed. A final line without a
// newline is returned before io.EOF.
func (r *LineReader) Next() (string, error) {
	line, err := r.reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	default:
		return "", err
	}

	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	if r.dest != nil {
		if _, err := io.WriteString(r.dest, line+"\n"); err != nil {
			return "", err
		}
	}

	return line, nil
}
