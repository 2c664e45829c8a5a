package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
	"tempnet/logs"
)

type Parser interface {
	ParsePushLine(rawLine string) error // parse one raw line and push the result into the parser's target
}

const maxLineSize = 1024 * 1024

// ParseFile feeds every line of the named file into parser
func ParseFile(name string, parser Parser) error {
	f, err := os.Open(name)
	if err != nil {
		logs.Logger.WithError(err).Errorf("Open file %s failed", name)
		return err
	}
	defer f.Close()
	return ParseReader(f, parser)
}

// ParseReader feeds every line of r into parser, stopping at the first error
func ParseReader(r io.Reader, parser Parser) error {
	s := bufio.NewScanner(bufio.NewReader(r))
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if err := parser.ParsePushLine(line); err != nil {
			return err
		}
	}
	return s.Err()
}
