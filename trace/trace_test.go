package trace

import (
	"testing"

	. "github.com/stevegt/goadapt"
)

var testString = `Trace test
iter 0
loss 0.5
eta 0.005
w 0.1
w 0.2
`

func TestString(t *testing.T) {
	tr := New("test")
	tr.Add(0, 0.5, 0.005, []float64{0.1, 0.2})
	Tassert(t, tr.String() == testString, tr.String())
}

func TestClone(t *testing.T) {
	tr1 := New("test")
	tr1.Add(0, 0.5, 0.005, []float64{0.1, 0.2})
	tr2 := tr1.Clone()
	Tassert(t, tr1.Equal(tr2), "\n%s\n\n%s\n", tr1, tr2)
	tr2.Statements[1].Arg = 0.25
	Tassert(t, !tr1.Equal(tr2), "clone shares statements")
}

func TestBytes(t *testing.T) {
	tr1 := New("run")
	tr1.Add(0, 1.5, 0.005, []float64{0.1, -0.2, 124.0})
	tr1.Add(1, 1.25, 0.005, []float64{0.2, -0.3, 124.5})
	buf := tr1.AsBytes()
	Tassert(t, len(buf) == len("run|")+9*2*6, len(buf))
	tr2, err := FromBytes(buf)
	Tassert(t, err == nil, err)
	Tassert(t, tr2.Name == "run", tr2.Name)
	Tassert(t, tr1.Equal(tr2), "\n%s\n\n%s\n", tr1, tr2)

	// a trailing partial statement is dropped
	tr3, err := FromBytes(append(buf, 1, 2, 3))
	Tassert(t, err == nil, err)
	Tassert(t, tr1.Equal(tr3), "partial statement kept")

	_, err = FromBytes([]byte("no header"))
	Tassert(t, err != nil, "missing header should fail")
}

func TestRecords(t *testing.T) {
	tr := New("run")
	tr.Add(0, 1.5, 0.005, []float64{0.1, -0.2})
	tr.Add(1, 1.25, 0.0025, []float64{0.2, -0.3})
	records := tr.Records()
	Tassert(t, len(records) == 2, records)
	rec := records[1]
	Tassert(t, rec.Iteration == 1 && rec.Loss == 1.25 && rec.Eta == 0.0025, rec)
	Tassert(t, len(rec.Weights) == 2 && rec.Weights[1] == -0.3, rec.Weights)
}

func TestFloat64Bytes(t *testing.T) {
	for _, f := range []float64{0, 1, -1, 0.1, 1e300} {
		Tassert(t, Float64FromBytes(Float64ToBytes(f)) == f, f)
	}
}

func TestFromBytesRejectsCorruption(t *testing.T) {
	tr := New("run")
	tr.Add(0, 1.5, 0.005, []float64{0.1})
	buf := tr.AsBytes()

	bad := append([]byte(nil), buf...)
	bad[len("run|")+9] = byte(OpLast)
	_, err := FromBytes(bad)
	Tassert(t, err != nil, "unknown opcode should fail")

	bad = append([]byte(nil), buf...)
	bad[len("run|")] = byte(OpWeight)
	_, err = FromBytes(bad)
	Tassert(t, err != nil, "leading weight should fail")

	_, err = FromBytes(buf)
	Tassert(t, err == nil, err)
}
