package sinenet

import (
	"bufio"
	"io"
	"os"

	. "github.com/stevegt/goadapt"
)

// Report writes the targets and the learned outputs to w as two
// labeled lists, one number per line.
func Report(w io.Writer, targets, learned []float64) (err error) {
	defer Return(&err)
	bw := bufio.NewWriter(w)
	_, err = bw.WriteString("Actual Output: \n")
	Ck(err)
	for _, y := range targets {
		_, err = bw.WriteString(Spf("%.6g\n", y))
		Ck(err)
	}
	_, err = bw.WriteString("\nLearned Output: \n")
	Ck(err)
	for _, y := range learned {
		_, err = bw.WriteString(Spf("%.6g\n", y))
		Ck(err)
	}
	err = bw.Flush()
	Ck(err)
	return
}

// ReportFile writes the report to the named file, replacing it.
func ReportFile(path string, targets, learned []float64) (err error) {
	defer Return(&err)
	f, err := os.Create(path)
	Ck(err)
	defer f.Close()
	err = Report(f, targets, learned)
	Ck(err)
	err = f.Close()
	Ck(err)
	return
}
