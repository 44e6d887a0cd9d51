// Command toydb is an interactive shell speaking the toydb wire protocol.
// Statements end with ';' and may span multiple lines.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/stellnox/toydb/internal/sql/executor"
	"github.com/stellnox/toydb/sqlclient"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8642", "Server address")
	flag.Parse()

	c, err := sqlclient.Dial(*addr, 3*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = c.Close() }()
	c.SetRWTimeout(10 * time.Second)

	rl, err := readline.New("toydb> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	fmt.Printf("Connected to toydb at %s. Statements end with ';'. Type exit to quit.\n", *addr)

	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			rl.SetPrompt("toydb> ")
		} else {
			rl.SetPrompt("   -> ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf.Reset()
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			return
		}

		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 {
			switch strings.ToLower(trimmed) {
			case "exit", "quit":
				return
			case "":
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteString(" ")
		if !strings.HasSuffix(trimmed, ";") {
			continue
		}

		sql := buf.String()
		buf.Reset()

		res, err := c.Exec(sql)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		printResult(res)
	}
}

func printResult(res *executor.Result) {
	if res == nil {
		fmt.Println("OK")
		return
	}

	if len(res.Columns) > 0 {
		printTable(res)
		fmt.Printf("%d row(s)\n", len(res.Rows))
		return
	}
	if res.TxnID != 0 {
		fmt.Printf("transaction %d\n", res.TxnID)
		return
	}
	fmt.Printf("%d row(s) affected\n", res.AffectedRows)
}

func printTable(res *executor.Result) {
	widths := make([]int, len(res.Columns))
	for i, col := range res.Columns {
		widths[i] = len(col.Name)
	}
	cells := make([][]string, len(res.Rows))
	for r, row := range res.Rows {
		cells[r] = make([]string, len(res.Columns))
		for i := range res.Columns {
			s := "NULL"
			if i < len(row) {
				s = row[i].String()
			}
			cells[r][i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	sep := func() {
		for _, w := range widths {
			fmt.Print("+", strings.Repeat("-", w+2))
		}
		fmt.Println("+")
	}

	sep()
	for i, col := range res.Columns {
		fmt.Printf("| %-*s ", widths[i], col.Name)
	}
	fmt.Println("|")
	sep()
	for _, row := range cells {
		for i, cell := range row {
			fmt.Printf("| %-*s ", widths[i], cell)
		}
		fmt.Println("|")
	}
	sep()
}
