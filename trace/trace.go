package trace

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	. "github.com/stevegt/goadapt"
)

// A trace is a compact binary record of a training run:
//
// name|statements
//
// where name is the run's name and statements is a byte array of
// 72-bit statements -- 8 bits for the opcode, and 64 bits for a
// float64 argument.  Each iteration is an OpIteration statement
// followed by OpLoss, OpEta, and one OpWeight per weight.

type Statement struct {
	Opcode Opcode
	Arg    float64
}

// String returns a string representation of the statement.
func (statement *Statement) String() string {
	return Spf("%v %g", statement.Opcode, statement.Arg)
}

type Trace struct {
	Name       string
	Statements []*Statement
}

// Record is one decoded iteration of a trace.
type Record struct {
	Iteration int
	Loss      float64
	Eta       float64
	Weights   []float64
}

func New(name string) (tr *Trace) {
	Assert(!strings.Contains(name, "|"), "trace name contains '|': %q", name)
	tr = &Trace{Name: name}
	return
}

// String returns a string representation of the trace.
func (tr *Trace) String() string {
	var buf bytes.Buffer
	buf.WriteString(Spf("Trace %s\n", tr.Name))
	for _, statement := range tr.Statements {
		buf.WriteString(Spf("%s\n", statement))
	}
	return buf.String()
}

// Clone returns a copy of the trace.
func (tr *Trace) Clone() (clone *Trace) {
	clone = &Trace{Name: tr.Name}
	clone.Statements = make([]*Statement, len(tr.Statements))
	for i, statement := range tr.Statements {
		clone.Statements[i] = &Statement{
			Opcode: statement.Opcode,
			Arg:    statement.Arg,
		}
	}
	return
}

// AddOp appends a statement to the trace given an opcode and argument.
func (tr *Trace) AddOp(opcode Opcode, arg float64) {
	statement := &Statement{
		Opcode: opcode,
		Arg:    arg,
	}
	tr.Statements = append(tr.Statements, statement)
}

// Add appends one iteration to the trace.
func (tr *Trace) Add(iteration int, loss, eta float64, weights []float64) {
	tr.AddOp(OpIteration, float64(iteration))
	tr.AddOp(OpLoss, loss)
	tr.AddOp(OpEta, eta)
	for _, w := range weights {
		tr.AddOp(OpWeight, w)
	}
}

// Records decodes the statements into per-iteration records.
func (tr *Trace) Records() (records []Record) {
	for _, statement := range tr.Statements {
		if statement.Opcode == OpIteration {
			records = append(records, Record{Iteration: int(statement.Arg)})
			continue
		}
		Assert(len(records) > 0, "statement before first iteration: %v", statement)
		rec := &records[len(records)-1]
		switch statement.Opcode {
		case OpLoss:
			rec.Loss = statement.Arg
		case OpEta:
			rec.Eta = statement.Arg
		case OpWeight:
			rec.Weights = append(rec.Weights, statement.Arg)
		default:
			Assert(false, "unknown opcode %v", statement.Opcode)
		}
	}
	return
}

// Equal reports whether two traces are bit-for-bit identical.
func (tr *Trace) Equal(other *Trace) bool {
	return bytes.Equal(tr.AsBytes(), other.AsBytes())
}

// AddBytes appends a statement to the trace given a 9-byte slice.
func (tr *Trace) AddBytes(buf []byte) {
	opcode := uint(buf[0])
	arg := Float64FromBytes(buf[1:9])
	tr.AddOp(Opcode(opcode), arg)
}

// AsBytes returns the trace as a byte slice.
func (tr *Trace) AsBytes() (out []byte) {
	var buf bytes.Buffer
	_, err := buf.WriteString(tr.Name + "|")
	Ck(err)
	_, err = buf.Write(tr.StatementsAsBytes())
	Ck(err)
	out = buf.Bytes()
	return
}

// FromBytes creates a new trace from a byte slice.
func FromBytes(buf []byte) (tr *Trace, err error) {
	defer Return(&err)
	i := bytes.IndexByte(buf, '|')
	Assert(i >= 0, "invalid trace: missing header")
	tr = &Trace{Name: string(buf[:i])}
	tr.StatementsFromBytes(buf[i+1:])
	for j, statement := range tr.Statements {
		Assert(statement.Opcode < OpLast, "invalid trace: statement %d has unknown opcode %d", j, uint(statement.Opcode))
		Assert(j > 0 || statement.Opcode == OpIteration, "invalid trace: first statement is %v", statement.Opcode)
	}
	return
}

// StatementsFromBytes replaces the trace statements from a byte slice.
func (tr *Trace) StatementsFromBytes(buf []byte) {
	tr.Statements = make([]*Statement, 0, len(buf)/9)
	for i := 0; i < len(buf); i += 9 {
		statementEnd := i + 9
		if statementEnd > len(buf) {
			// skip partial statement at end
			break
		}
		tr.AddBytes(buf[i:statementEnd])
	}
}

// StatementsAsBytes returns the trace statements as a byte slice.
func (tr *Trace) StatementsAsBytes() (outbuf []byte) {
	var buf bytes.Buffer
	for _, statement := range tr.Statements {
		err := buf.WriteByte(byte(statement.Opcode))
		Ck(err)
		argbytes := Float64ToBytes(statement.Arg)
		n, err := buf.Write(argbytes)
		Ck(err)
		Assert(n == len(argbytes), "short write")
	}
	outbuf = buf.Bytes()
	return
}

type Opcode uint

const (
	// start of an iteration; arg is the iteration index
	OpIteration Opcode = iota
	// loss computed in this iteration
	OpLoss
	// learning rate after this iteration's rate control
	OpEta
	// next weight after this iteration's update
	OpWeight
	// keep this last
	OpLast
)

func (op Opcode) String() string {
	switch op {
	case OpIteration:
		return "iter"
	case OpLoss:
		return "loss"
	case OpEta:
		return "eta"
	case OpWeight:
		return "w"
	}
	return Spf("op%d", uint(op))
}

func Float64FromBytes(bytes []byte) float64 {
	bits := binary.BigEndian.Uint64(bytes)
	return math.Float64frombits(bits)
}

func Float64ToBytes(float float64) []byte {
	bits := math.Float64bits(float)
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, bits)
	return bytes
}
