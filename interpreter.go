package daedalus

// Flags is an open bitmask of escape signals. The kernel assigns no meaning
// to any bit; client languages define their own constants, e.g.
//
//	const FlagReturn daedalus.Flags = 1 << 0
type Flags uint64

func FlagContains(source Flags, searched Flags) bool {
	return source&searched != 0
}

func FlagRemove(source Flags, remove Flags) Flags {
	return source &^ remove
}

type RuntimeValueWrapper struct {
	Value RuntimeValue
	Flags Flags
	// When the wrapper escapes a scope, the scope yields the result of the
	// statement before this one instead.
	ReturnStatementBefore bool
}

func Wrap(value RuntimeValue) RuntimeValueWrapper {
	return RuntimeValueWrapper{Value: value}
}

func WrapFlags(value RuntimeValue, flags Flags, returnStatementBefore bool) RuntimeValueWrapper {
	return RuntimeValueWrapper{value, flags, returnStatementBefore}
}

type RuntimeResult struct {
	ExpressionRepr string
	ValueRepr      string
}

type EvaluateFunc func(interpreter *Interpreter, statement Statement, env *Environment) (RuntimeValueWrapper, error)

type Interpreter struct {
	evaluators map[string]EvaluateFunc
	properties []string
	rules      []ValidationRule
}

// NewInterpreter installs the built-in NumberExpression evaluator, then the
// evaluators of the client language keyed by node type.
func NewInterpreter(evaluators map[string]EvaluateFunc, properties []string, rules []ValidationRule) *Interpreter {
	self := &Interpreter{
		evaluators: map[string]EvaluateFunc{
			NODE_NUMBER_EXPRESSION: evaluateNumberExpression,
		},
		properties: append([]string(nil), properties...),
		rules:      append([]ValidationRule(nil), rules...),
	}
	for nodeType, evaluate := range evaluators {
		self.evaluators[nodeType] = evaluate
	}
	return self
}

func (self *Interpreter) Register(nodeType string, evaluate EvaluateFunc) {
	self.evaluators[nodeType] = evaluate
}

// NewEnvironment creates an environment configured with the interpreter's
// value properties and validation rules.
func (self *Interpreter) NewEnvironment(outer *Environment) *Environment {
	return NewEnvironment(self.properties, self.rules, outer)
}

func (self *Interpreter) EvaluateStatement(statement Statement, env *Environment) (RuntimeValueWrapper, error) {
	evaluate, ok := self.evaluators[statement.Type()]
	if !ok {
		return RuntimeValueWrapper{}, NewEvalError(ErrUnknownStatement, statement.Type(), "no evaluator registered")
	}
	return evaluate(self, statement, env)
}

// EvaluateScope evaluates the statements of scope in order inside scopeEnv,
// or inside a new environment below parentEnv if scopeEnv is nil. Results of
// completed statements are appended to results. A result whose flags
// intersect escape stops the scope; that result is not appended and is
// returned as is, or, if it requests so, the previous result is returned
// carrying its flags.
func (self *Interpreter) EvaluateScope(
	scope *Scope,
	results *[]RuntimeResult,
	scopeEnv *Environment,
	parentEnv *Environment,
	escape Flags,
) (RuntimeValueWrapper, error) {
	if scopeEnv == nil {
		scopeEnv = self.NewEnvironment(parentEnv)
	}

	result := Wrap(NewNull())
	previous := Wrap(NewNull())
	for _, statement := range scope.Body {
		var err error
		result, err = self.EvaluateStatement(statement, scopeEnv)
		if err != nil {
			return RuntimeValueWrapper{}, err
		}
		if result.Value == nil {
			result.Value = NewNull()
		}

		if FlagContains(result.Flags, escape) {
			if result.ReturnStatementBefore {
				previous.Flags = result.Flags
				return previous, nil
			}
			return result, nil
		}

		previous = result
		if results != nil {
			*results = append(*results, RuntimeResult{
				ExpressionRepr: statement.Repr(0),
				ValueRepr:      result.Value.String(),
			})
		}
	}
	return result, nil
}

// Interpret evaluates program in a fresh root environment and returns the
// trace of its top-level statements.
func (self *Interpreter) Interpret(program *Scope) ([]RuntimeResult, error) {
	results := []RuntimeResult{}
	env := self.NewEnvironment(nil)
	if _, err := self.EvaluateScope(program, &results, env, nil, 0); err != nil {
		return nil, err
	}
	return results, nil
}

func evaluateNumberExpression(interpreter *Interpreter, statement Statement, env *Environment) (RuntimeValueWrapper, error) {
	number, ok := statement.(*NumberExpression)
	if !ok {
		return RuntimeValueWrapper{}, NewEvalError(ErrUnknownStatement, statement.Type(), "not a number expression")
	}
	return Wrap(NewNumber(number.Value)), nil
}
