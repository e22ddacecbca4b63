package daedalus

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set"
)

type Sensitivity int

const (
	SensitivityInit Sensitivity = iota
	SensitivitySet
	SensitivityGet
)

func (self Sensitivity) String() string {
	switch self {
	case SensitivityInit:
		return "init"
	case SensitivitySet:
		return "set"
	case SensitivityGet:
		return "get"
	}
	return fmt.Sprintf("sensitivity(%d)", int(self))
}

type EnvValue struct {
	Value      RuntimeValue
	Properties map[string]string
}

// ValidationFunc inspects a binding and returns the binding to continue with.
// On init and get candidate is nil and current is the binding so far. On set
// current is the stored binding and candidate the value being assigned, as
// transformed by the rules before.
type ValidationFunc func(current EnvValue, candidate RuntimeValue, key string) (EnvValue, error)

type ValidationRule struct {
	Validate  ValidationFunc
	AppliesTo mapset.Set // Set of Sensitivity.
}

func NewValidationRule(validate ValidationFunc, appliesTo ...Sensitivity) ValidationRule {
	sensitivities := mapset.NewSet()
	for _, sensitivity := range appliesTo {
		sensitivities.Add(sensitivity)
	}
	return ValidationRule{validate, sensitivities}
}

func (self ValidationRule) Handles(sensitivity Sensitivity) bool {
	return self.AppliesTo != nil && self.AppliesTo.Contains(sensitivity)
}

// MutabilityRule rejects assignments to bindings whose property is not
// "true".
func MutabilityRule(property string) ValidationRule {
	return NewValidationRule(func(current EnvValue, candidate RuntimeValue, key string) (EnvValue, error) {
		mutable, ok := current.Properties[property]
		if !ok {
			return EnvValue{}, NewEnvError(ErrRuleRejected, key, fmt.Sprintf("undeclared property %s", quote(property)))
		}
		if mutable != "true" {
			return EnvValue{}, NewEnvError(ErrRuleRejected, key, "assignment to immutable value")
		}
		return EnvValue{candidate, current.Properties}, nil
	}, SensitivitySet)
}

// Environment is one scope of variables. Lookups and assignments which miss
// locally continue in the outer environment.
type Environment struct {
	outer      *Environment // Optional
	store      map[string]EnvValue
	properties mapset.Set
	rules      []ValidationRule
}

func NewEnvironment(properties []string, rules []ValidationRule, outer *Environment) *Environment {
	allowed := mapset.NewSet()
	for _, property := range properties {
		allowed.Add(property)
	}
	return &Environment{
		outer:      outer,
		store:      map[string]EnvValue{},
		properties: allowed,
		rules:      append([]ValidationRule(nil), rules...),
	}
}

// NewChild creates an environment with the same configuration whose outer
// environment is self.
func (self *Environment) NewChild() *Environment {
	return &Environment{
		outer:      self,
		store:      map[string]EnvValue{},
		properties: self.properties,
		rules:      self.rules,
	}
}

func (self *Environment) Outer() *Environment {
	return self.outer
}

func (self *Environment) HasLocal(key string) bool {
	_, ok := self.store[key]
	return ok
}

func (self *Environment) Init(key string, value RuntimeValue, properties map[string]string) (RuntimeValue, error) {
	for property := range properties {
		if !self.properties.Contains(property) {
			return nil, NewEnvError(ErrInvalidProperty, key, quote(property))
		}
	}
	if self.HasLocal(key) {
		return nil, NewEnvError(ErrRedeclaration, key, "")
	}

	copied := make(map[string]string, len(properties))
	for property, data := range properties {
		copied[property] = data
	}

	envValue, err := self.validate(SensitivityInit, EnvValue{value, copied}, key, func(current EnvValue) (EnvValue, RuntimeValue) {
		return current, nil
	})
	if err != nil {
		return nil, err
	}

	self.store[key] = envValue
	return value, nil
}

// Set assigns value to the closest binding of key and returns the value it
// replaced.
func (self *Environment) Set(key string, value RuntimeValue) (RuntimeValue, error) {
	stored, ok := self.store[key]
	if !ok {
		if self.outer == nil {
			return nil, NewEnvError(ErrUndeclared, key, "assignment")
		}
		return self.outer.Set(key, value)
	}

	envValue, err := self.validate(SensitivitySet, EnvValue{value, stored.Properties}, key, func(candidate EnvValue) (EnvValue, RuntimeValue) {
		return stored, candidate.Value
	})
	if err != nil {
		return nil, err
	}

	self.store[key] = envValue
	return stored.Value, nil
}

func (self *Environment) Get(key string) (RuntimeValue, error) {
	stored, ok := self.store[key]
	if !ok {
		if self.outer == nil {
			return nil, NewEnvError(ErrUndeclared, key, "access")
		}
		return self.outer.Get(key)
	}

	envValue, err := self.validate(SensitivityGet, stored, key, func(current EnvValue) (EnvValue, RuntimeValue) {
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	return envValue.Value, nil
}

// validate threads envValue through every rule handling sensitivity, in
// registration order. arguments maps the binding so far onto the arguments
// of the next rule.
func (self *Environment) validate(
	sensitivity Sensitivity,
	envValue EnvValue,
	key string,
	arguments func(EnvValue) (EnvValue, RuntimeValue),
) (EnvValue, error) {
	for _, rule := range self.rules {
		if !rule.Handles(sensitivity) {
			continue
		}
		current, candidate := arguments(envValue)
		next, err := rule.Validate(current, candidate, key)
		if err != nil {
			var envErr *EnvError
			if errors.As(err, &envErr) {
				return EnvValue{}, err
			}
			return EnvValue{}, NewEnvError(ErrRuleRejected, key, err.Error())
		}
		envValue = next
	}
	return envValue, nil
}
