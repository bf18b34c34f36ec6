package sse

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing/iotest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LineReader", func() {
	readAll := func(r *LineReader) []string {
		var lines []string
		for {
			line, err := r.Next()
			if errors.Is(err, io.EOF) {
				return lines
			}
			Expect(err).NotTo(HaveOccurred())
			lines = append(lines, line)
		}
	}

	Describe("Next", func() {
		It("yields every line including blanks", func() {
			r := NewLineReader(strings.NewReader("data: first\n\ndata: second\n\n"))
			Expect(readAll(r)).To(Equal([]string{"data: first", "", "data: second", ""}))
		})

		It("yields a final line without a trailing newline", func() {
			r := NewLineReader(strings.NewReader("data: unterminated"))
			Expect(readAll(r)).To(Equal([]string{"data: unterminated"}))
		})

		It("strips carriage returns from CRLF framing", func() {
			r := NewLineReader(strings.NewReader("data: a\r\n\r\n"))
			Expect(readAll(r)).To(Equal([]string{"data: a", ""}))
		})

		It("returns io.EOF on empty input", func() {
			r := NewLineReader(strings.NewReader(""))
			_, err := r.Next()
			Expect(err).To(MatchError(io.EOF))
		})

		It("keeps returning io.EOF once exhausted", func() {
			r := NewLineReader(strings.NewReader("x\n"))
			_, err := r.Next()
			Expect(err).NotTo(HaveOccurred())
			_, err = r.Next()
			Expect(err).To(MatchError(io.EOF))
			_, err = r.Next()
			Expect(err).To(MatchError(io.EOF))
		})

		It("surfaces read failures from the source", func() {
			boom := errors.New("connection reset")
			src := io.MultiReader(strings.NewReader("data: a\n"), iotest.ErrReader(boom))
			r := NewLineReader(src)

			line, err := r.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(line).To(Equal("data: a"))

			_, err = r.Next()
			Expect(err).To(MatchError(boom))
		})

		It("accepts lines of several megabytes", func() {
			big := `data: {"event":"workflow_finished","data":{"outputs":{"text":"` + strings.Repeat("x", 3<<20) + `"}}}`
			r := NewLineReader(strings.NewReader(big + "\n\ndata: {\"event\":\"message\"}\n"))
			Expect(readAll(r)).To(Equal([]string{big, "", `data: {"event":"message"}`}))
		})

		It("accepts lines larger than the initial buffer", func() {
			big := "data: " + strings.Repeat("x", 200*1024)
			r := NewLineReader(strings.NewReader(big + "\n"))
			Expect(readAll(r)).To(Equal([]string{big}))
		})
	})

	Context("verbatim byte forwarding", func() {
		It("copies every line to dest", func() {
			dst := &bytes.Buffer{}
			input := "event: ping\n\ndata: {\"event\":\"message\"}\n\ndata: [DONE]\n\n"
			r := NewTeeLineReader(strings.NewReader(input), dst)

			readAll(r)
			Expect(dst.String()).To(Equal(input))
		})

		It("fails when dest rejects the write", func() {
			r := NewTeeLineReader(strings.NewReader("data: a\n"), failingWriter{})
			_, err := r.Next()
			Expect(err).To(MatchError("disk full"))
		})
	})
})

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}
