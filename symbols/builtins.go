package symbols

// Variadic marks a built-in function's Arity as accepting any number
// of arguments (the `*args` marker), skipping the argument-count
// check during call analysis.
const Variadic = -1

// NewGlobalScope returns a module-level scope pre-populated with the
// built-in function registry, each marked initialized so it is usable
// without prior definition.
func NewGlobalScope() *Scope {
	scope := NewScope(nil)
	for _, b := range builtins {
		scope.Define(&Symbol{
			Name:        b.name,
			Kind:        FunctionSymbol,
			Type:        b.result,
			Arity:       b.arity,
			Initialized: true,
		})
	}
	return scope
}

var builtins = []struct {
	name   string
	arity  int
	result Type
}{
	{"print", Variadic, NoneType},
	{"input", 0, StringType},
	{"len", 1, IntType},
	{"int", 1, IntType},
	{"float", 1, FloatType},
	{"str", 1, StringType},
	{"bool", 1, BoolType},
}

// IsBuiltin reports whether name is a pre-populated built-in function.
func IsBuiltin(name string) bool {
	for _, b := range builtins {
		if b.name == name {
			return true
		}
	}
	return false
}
