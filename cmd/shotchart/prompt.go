package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/stitts-dev/nba-shotchart/internal/models"
	"github.com/stitts-dev/nba-shotchart/internal/players"
)

var errNoInput = errors.New("no input")

// prompter asks for missing values on the terminal
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprintln(p.out, question)
	fmt.Fprint(p.out, ">> ")
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", errNoInput
		}
		return "", err
	}
	return line, nil
}

func (p *prompter) player() (string, error) {
	return p.ask("Enter player")
}

// season is not validated; the stats API rejects malformed seasons
func (p *prompter) season() (string, error) {
	return p.ask("enter year (in format yyyy-yy (e.g. 2014-15))")
}

// choose lists the candidates of an ambiguous name and reads a 1-based index
func (p *prompter) choose(candidates []models.Player) (models.Player, error) {
	fmt.Fprintln(p.out, "More than one player matches:")
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	for i, c := range candidates {
		fmt.Fprintf(tw, "  %d)\t%s\t%s-%s\t%d\n", i+1, c.DisplayLastFirst, c.FromYear, c.ToYear, c.PersonID)
	}
	tw.Flush()

	for {
		answer, err := p.ask(fmt.Sprintf("choose a player [1-%d]", len(candidates)))
		if err != nil {
			return models.Player{}, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(candidates) {
			return candidates[n-1], nil
		}
		fmt.Fprintf(p.out, "%q is not a number between 1 and %d\n", answer, len(candidates))
	}
}

// resolvePlayer turns a typed name into one player, asking when ambiguous
func resolvePlayer(dir *players.Directory, p *prompter, name string) (models.Player, error) {
	res, err := dir.Resolve(players.LastCommaFirst(name))
	if err != nil {
		return models.Player{}, err
	}
	switch r := res.(type) {
	case players.SingleMatch:
		return r.Player, nil
	case players.MultipleMatches:
		return p.choose(r.Players)
	default:
		return models.Player{}, fmt.Errorf("unexpected resolution %T", res)
	}
}

// writeTable dumps a bulk reference table as aligned columns
func writeTable(w io.Writer, table *models.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Headers, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
