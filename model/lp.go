// SPDX-License-Identifier: MIT

package model

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// lpTermsPerLine keeps LP lines well below the 510-character limit some
// readers enforce.
const lpTermsPerLine = 8

// WriteLP renders the model in CPLEX LP format (Maximize / Subject To /
// Bounds / Binaries / End), readable by external MILP engines such as
// CPLEX, Gurobi, HiGHS, CBC or GLPK.
func (m *TourModel) WriteLP(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\\ slideshow ATSP, S=%d, %d variables, %d rows\n", m.S, len(m.Vars), len(m.Constraints))
	bw.WriteString("Maximize\n obj:")
	terms := make([]Term, 0, len(m.Objective))
	for k, c := range m.Objective {
		if m.Vars[k].Kind == Binary {
			terms = append(terms, Term{Var: k, Coef: c})
		}
	}
	m.writeTerms(bw, terms)
	bw.WriteByte('\n')

	bw.WriteString("Subject To\n")
	for _, c := range m.Constraints {
		fmt.Fprintf(bw, " %s:", c.Name)
		m.writeTerms(bw, c.Terms)
		fmt.Fprintf(bw, " %s %s\n", c.Sense, formatCoef(c.RHS))
	}

	bw.WriteString("Bounds\n")
	for _, v := range m.Vars {
		if v.Kind != Continuous {
			continue
		}
		if math.IsInf(v.Upper, 1) {
			fmt.Fprintf(bw, " %s >= %s\n", v.Name, formatCoef(v.Lower))
		} else {
			fmt.Fprintf(bw, " %s <= %s <= %s\n", formatCoef(v.Lower), v.Name, formatCoef(v.Upper))
		}
	}

	bw.WriteString("Binaries\n")
	n := 0
	for _, v := range m.Vars {
		if v.Kind != Binary {
			continue
		}
		bw.WriteByte(' ')
		bw.WriteString(v.Name)
		if n++; n%lpTermsPerLine == 0 {
			bw.WriteByte('\n')
		}
	}
	if n%lpTermsPerLine != 0 {
		bw.WriteByte('\n')
	}
	bw.WriteString("End\n")

	return bw.Flush()
}

// WriteLPFile writes the LP rendering of m to path.
func (m *TourModel) WriteLPFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write lp %s: %w", path, err)
	}
	if err = m.WriteLP(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write lp %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("write lp %s: %w", path, err)
	}

	return nil
}

// writeTerms emits " + c name - c name ..." with continuation lines.
func (m *TourModel) writeTerms(bw *bufio.Writer, terms []Term) {
	if len(terms) == 0 {
		bw.WriteString(" 0")
		return
	}
	for i, t := range terms {
		if i > 0 && i%lpTermsPerLine == 0 {
			bw.WriteString("\n  ")
		}
		sign, c := "+", t.Coef
		if c < 0 {
			sign, c = "-", -c
		}
		if i == 0 && sign == "+" {
			fmt.Fprintf(bw, " %s %s", formatCoef(c), m.Vars[t.Var].Name)
			continue
		}
		fmt.Fprintf(bw, " %s %s %s", sign, formatCoef(c), m.Vars[t.Var].Name)
	}
}

func formatCoef(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
