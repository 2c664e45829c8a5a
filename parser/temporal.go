package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"tempnet/helper"
	"tempnet/logs"
	"tempnet/models"
)

const (
	TimeColumn   = "time"
	SourceColumn = "node1"
	TargetColumn = "node2"
)

// DefaultDelimiters are tried in this order when detecting the header
var DefaultDelimiters = []rune{' ', '\t', ';', ','}

type LoaderOptions struct {
	Delimiters []rune
	Undirected bool // every row also adds the reversed edge
}

func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{Delimiters: DefaultDelimiters}
}

// NewLoaderOptions builds options from a delimiter string such as " \t;,"
func NewLoaderOptions(delimiters string, undirected bool) LoaderOptions {
	opts := LoaderOptions{Delimiters: []rune(delimiters), Undirected: undirected}
	if len(opts.Delimiters) == 0 {
		opts.Delimiters = DefaultDelimiters
	}
	return opts
}

// TemporalParser reads delimited temporal edge rows. The first line is the
// header and must name the node1 and node2 columns, time is optional.
type TemporalParser struct {
	Log *models.TemporalEdgeLog

	opts      LoaderOptions
	delimiter rune
	timeIx    int
	sourceIx  int
	targetIx  int
	row       int
	sawHeader bool
	ignoring  bool
}

func NewTemporalParser(opts LoaderOptions) *TemporalParser {
	if len(opts.Delimiters) == 0 {
		opts.Delimiters = DefaultDelimiters
	}
	return &TemporalParser{Log: models.NewTemporalEdgeLog(), opts: opts, timeIx: -1, sourceIx: -1, targetIx: -1}
}

func (p *TemporalParser) ParsePushLine(rawLine string) error {
	if !p.sawHeader {
		p.sawHeader = true
		p.parseHeader(rawLine)
		return nil
	}
	p.row++
	if p.ignoring || strings.TrimSpace(rawLine) == "" {
		return nil
	}

	fields := helper.SplitFields(rawLine, p.delimiter)
	if len(fields) <= p.sourceIx || len(fields) <= p.targetIx || (p.timeIx >= 0 && len(fields) <= p.timeIx) {
		if len(fields) > 0 {
			logs.Logger.Warnf("row %d has %d fields, skipped", p.row, len(fields))
		}
		return nil
	}
	source, target := fields[p.sourceIx], fields[p.targetIx]
	if source == "" || target == "" {
		return nil
	}

	t := p.row // rows without explicit time occur at consecutive steps
	if p.timeIx >= 0 {
		var err error
		if t, err = strconv.Atoi(fields[p.timeIx]); err != nil {
			return fmt.Errorf("row %d: invalid time %q: %w", p.row, fields[p.timeIx], err)
		}
	}
	p.Log.Append(t, source, target)
	if p.opts.Undirected {
		p.Log.Append(t, target, source)
	}
	return nil
}

func (p *TemporalParser) parseHeader(line string) {
	var header []string
	for _, d := range p.opts.Delimiters {
		header = helper.SplitFields(line, d)
		if len(header) >= 2 && helper.SliceContainsTarget(header, SourceColumn) && helper.SliceContainsTarget(header, TargetColumn) {
			p.delimiter = d
			break
		}
		header = nil
	}
	if header == nil {
		logs.Logger.Warnf("header %q lacks %s and %s columns, no edges loaded", line, SourceColumn, TargetColumn)
		p.ignoring = true
		return
	}
	for i, name := range header {
		switch name {
		case TimeColumn:
			p.timeIx = i
		case SourceColumn:
			p.sourceIx = i
		case TargetColumn:
			p.targetIx = i
		}
	}
}

// Read parses a temporal network. A missing header yields an empty log
// without error, an unparsable time value is an error.
func Read(r io.Reader, opts LoaderOptions) (*models.TemporalEdgeLog, error) {
	p := NewTemporalParser(opts)
	if err := ParseReader(r, p); err != nil {
		return nil, err
	}
	return p.Log, nil
}

func Load(path string, opts LoaderOptions) (*models.TemporalEdgeLog, error) {
	p := NewTemporalParser(opts)
	if err := ParseFile(path, p); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logs.Logger.Infof("loaded %s: %d steps, %d edges", path, p.Log.Length(), p.Log.EdgeCount())
	return p.Log, nil
}

// Write emits the log as "time node1 node2" rows in ascending time
func Write(w io.Writer, log *models.TemporalEdgeLog) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %s %s\n", TimeColumn, SourceColumn, TargetColumn)
	log.Scan(func(t int, edges []models.Edge) bool {
		for _, e := range edges {
			fmt.Fprintf(bw, "%d %s %s\n", t, e.Source, e.Target)
		}
		return true
	})
	return bw.Flush()
}

func Save(path string, log *models.TemporalEdgeLog) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, log); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
