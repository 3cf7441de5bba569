package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mmynk/splitsettle/internal/models"
	"github.com/mmynk/splitsettle/internal/service"
)

// writeReport prints the totals, the transfers to make and what each
// participant pays and receives.
func writeReport(w io.Writer, res *service.Result, showNaive bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Total spent: %s\n", res.Summary.TotalSpent)
	fmt.Fprintf(bw, "    %s for each of %d people\n", res.Summary.PerPerson, res.Summary.TotalPeople)

	if res.FellBack {
		fmt.Fprintln(bw, "\nWarning: optimization failed validation, showing unoptimized transfers")
	}

	if showNaive {
		fmt.Fprintf(bw, "\nUnoptimized transfers (%d):\n", len(res.Naive))
		writeTransfers(bw, res.Naive)
	}

	fmt.Fprintf(bw, "\nTransfers (%d):\n", len(res.Transfers))
	writeTransfers(bw, res.Transfers)

	for _, m := range res.Summary.Members {
		fmt.Fprintf(bw, "\n%s:\n", m.Participant.Identifier())
		if m.Participant.Kind() == models.KindNamed {
			fmt.Fprintf(bw, "    spent: %s\n", m.Spent)
		}
		fmt.Fprintf(bw, "    total to pay: %s\n", m.TotalToPay)
		fmt.Fprintf(bw, "    total to receive: %s\n", m.TotalToReceive)
	}

	return bw.Flush()
}

func writeTransfers(w io.Writer, transfers []models.Transfer) {
	if len(transfers) == 0 {
		fmt.Fprintln(w, "    nobody owes anything")
		return
	}
	for _, t := range transfers {
		fmt.Fprintf(w, "    %s pays %s -> %s\n", t.From.Identifier(), t.Amount, t.To.Identifier())
	}
}

// writeDOT writes the settlement graph to path, or to stdout for "-".
func writeDOT(path string, stdout io.Writer, res *service.Result) error {
	if path == "-" {
		return res.Graph.WriteDOT(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create DOT file: %w", err)
	}
	if err := res.Graph.WriteDOT(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
