// Package view renders repository snapshots as terminal text.
package view

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/thiagokokada/bisect-go/internal/bisect"
	"github.com/thiagokokada/bisect-go/internal/git"
	"github.com/thiagokokada/bisect-go/internal/repository"
)

// Section is one block of the status view. A section with no lines is
// omitted; the first line is rendered as the block heading.
type Section interface {
	ID() string
	Lines(snap *repository.Snapshot) []string
}

type HeadSection struct{}

func (HeadSection) ID() string { return "head" }

func (HeadSection) Lines(snap *repository.Snapshot) []string {
	if snap.Head == "" {
		return []string{"Head: (unborn)", ""}
	}
	line := fmt.Sprintf("Head: %s %s", snap.HeadName, git.ShortHash(snap.Head))
	if len(snap.Log) > 0 && snap.Log[0].Hash() == snap.Head {
		line += " " + snap.Log[0].Summary
	}
	return []string{line, ""}
}

type BisectSection struct{}

func (BisectSection) ID() string { return bisect.SectionID }

func (BisectSection) Lines(snap *repository.Snapshot) []string {
	return bisect.SectionLines(snap.Bisect)
}

type PullRequestSection struct{}

func (PullRequestSection) ID() string { return "pull-requests" }

func (PullRequestSection) Lines(snap *repository.Snapshot) []string {
	if snap.Forge == nil {
		return nil
	}
	prs := snap.Forge.PullRequests
	lines := make([]string, 0, len(prs)+2)
	lines = append(lines, fmt.Sprintf("Pull Requests (%d)", len(prs)))
	for _, pr := range prs {
		line := fmt.Sprintf("#%d %s", pr.Number, pr.Title)
		if len(pr.Labels) > 0 {
			names := make([]string, len(pr.Labels))
			for i, l := range pr.Labels {
				names[i] = l.Name
			}
			line += " [" + strings.Join(names, ", ") + "]"
		}
		lines = append(lines, line)
	}
	return append(lines, "")
}

// DefaultSections is the status layout: head, bisect session, pull requests.
func DefaultSections() []Section {
	return []Section{HeadSection{}, BisectSection{}, PullRequestSection{}}
}

// Printer holds the output palette. Colors are fixed at construction so
// rendering does not depend on whether stdout is a terminal.
type Printer struct {
	enabled bool
	heading *color.Color
	hash    *color.Color
	label   *color.Color
}

func NewPrinter(enabled bool) *Printer {
	p := &Printer{enabled: enabled}
	p.heading = p.newColor(color.FgCyan, color.Bold)
	p.hash = p.newColor(color.FgYellow)
	p.label = p.newColor(color.FgHiBlack)
	return p
}

func (p *Printer) newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (p *Printer) RenderStatus(w io.Writer, snap *repository.Snapshot, sections []Section) error {
	var buf bytes.Buffer
	for _, s := range sections {
		lines := s.Lines(snap)
		for i, line := range lines {
			if i == 0 {
				line = p.heading.Sprint(line)
			}
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// RenderLog writes one line per log entry: short id, ref decorations and
// summary. Bisect tags pick the summary style: the commit under test is bold,
// the good boundary green and the bad boundary red.
func (p *Printer) RenderLog(w io.Writer, snap *repository.Snapshot) error {
	labels := snap.RefLabels()
	var buf bytes.Buffer
	for _, e := range snap.Log {
		buf.WriteString(p.hash.Sprint(git.ShortHash(e.Hash())))
		if decorations := labels[e.Hash()]; len(decorations) > 0 {
			buf.WriteString(" ")
			buf.WriteString(p.label.Sprint("(" + strings.Join(decorations, ", ") + ")"))
		}
		buf.WriteString(" ")
		buf.WriteString(p.entryColor(e.Tags).Sprint(e.Summary))
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (p *Printer) entryColor(tags []string) *color.Color {
	var attrs []color.Attribute
	if slices.Contains(tags, bisect.TagCurrent) {
		attrs = append(attrs, color.Bold)
	}
	switch {
	case slices.Contains(tags, bisect.TagBad):
		attrs = append(attrs, color.FgRed)
	case slices.Contains(tags, bisect.TagGood):
		attrs = append(attrs, color.FgGreen)
	}
	return p.newColor(attrs...)
}
