package daedalus

import (
	"math"
	"strconv"
)

// RuntimeValue is the result of evaluating a statement. Client languages may
// add their own implementations next to the built-in null, number, and
// boolean values.
type RuntimeValue interface {
	Typename() string
	String() string
	IsTrue() bool
	Equal(RuntimeValue) bool
}

type Null struct{}

func NewNull() *Null {
	return &Null{}
}

func (self *Null) Typename() string {
	return "null"
}

func (self *Null) String() string {
	return "null"
}

func (self *Null) IsTrue() bool {
	return false
}

func (self *Null) Equal(other RuntimeValue) bool {
	_, ok := other.(*Null)
	return ok
}

type Boolean struct {
	data bool
}

func NewBoolean(data bool) *Boolean {
	return &Boolean{data}
}

func (self *Boolean) Get() bool {
	return self.data
}

func (self *Boolean) Typename() string {
	return "boolean"
}

func (self *Boolean) String() string {
	if self.data {
		return "true"
	}
	return "false"
}

func (self *Boolean) IsTrue() bool {
	return self.data
}

func (self *Boolean) Equal(other RuntimeValue) bool {
	othr, ok := other.(*Boolean)
	if !ok {
		return false
	}
	return self.data == othr.data
}

type Number struct {
	data float64
}

func NewNumber(data float64) *Number {
	return &Number{data}
}

func (self *Number) Get() float64 {
	return self.data
}

func (self *Number) Typename() string {
	return "number"
}

func (self *Number) String() string {
	return formatNumber(self.data)
}

func (self *Number) IsTrue() bool {
	return self.data != 0
}

func (self *Number) Equal(other RuntimeValue) bool {
	othr, ok := other.(*Number)
	if !ok {
		return false
	}
	return self.data == othr.data
}

// Numbers print with six fixed decimals, so 21 shows as 21.000000 in both
// the AST and the trace.
func formatNumber(data float64) string {
	if math.IsNaN(data) {
		return "NaN"
	}
	if data == math.Inf(+1) {
		return "Inf"
	}
	if data == math.Inf(-1) {
		return "-Inf"
	}
	return strconv.FormatFloat(data, 'f', 6, 64)
}
