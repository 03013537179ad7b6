// Package lua implements ports.Evaluator on top of an embedded Lua 5.2 VM.
//
// An expression is compiled once as the chunk `return (<expr>)` into a sandboxed state that
// only exposes math built-ins, so arithmetic, precedence and right-associative ^ come from
// the Lua grammar itself. Compiled states are pooled per expression text.
package lua

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"

	backend "github.com/Shopify/go-lua"
	"github.com/aretw0/multivar/pkg/domain"
)

const defaultMaxPrograms = 256

// Evaluator evaluates arithmetic expressions with Lua semantics. Safe for concurrent use.
type Evaluator struct {
	mu          sync.Mutex
	programs    map[string]*program
	maxPrograms int
}

type Option func(*Evaluator)

// WithMaxPrograms bounds the number of distinct expressions kept compiled.
// When the bound is reached the whole cache is dropped and refilled on demand.
func WithMaxPrograms(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxPrograms = n
		}
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		programs:    make(map[string]*program),
		maxPrograms: defaultMaxPrograms,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate binds the given variables and evaluates expr. Non-finite results are errors.
func (e *Evaluator) Evaluate(expr string, bindings map[string]float64) (float64, error) {
	p := e.program(expr)
	if p.err != nil {
		return math.NaN(), p.err
	}
	m, _ := p.pool.Get().(*machine)
	if m == nil {
		return math.NaN(), domain.NewEvaluationError(expr, "could not allocate interpreter", nil)
	}
	defer p.pool.Put(m)
	return m.call(bindings)
}

// Programs reports how many expressions are currently compiled.
func (e *Evaluator) Programs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.programs)
}

type program struct {
	err  error
	pool sync.Pool
}

func (e *Evaluator) program(expr string) *program {
	e.mu.Lock()
	p, ok := e.programs[expr]
	e.mu.Unlock()
	if ok {
		return p
	}

	p = &program{}
	source, err := prepare(expr)
	if err == nil {
		var m *machine
		if m, err = compile(expr, source); err == nil {
			p.pool.New = func() any {
				m, err := compile(expr, source)
				if err != nil {
					return nil
				}
				return m
			}
			p.pool.Put(m)
		}
	}
	p.err = err

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.programs) >= e.maxPrograms {
		e.programs = make(map[string]*program)
	}
	e.programs[expr] = p
	return p
}

var (
	identifierPattern = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)
	bindingPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

var keywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true, "end": true,
	"false": true, "for": true, "function": true, "goto": true, "if": true, "in": true,
	"local": true, "nil": true, "not": true, "or": true, "repeat": true, "return": true,
	"then": true, "true": true, "until": true, "while": true,
}

// prepare screens expr down to plain arithmetic and returns the chunk source.
func prepare(expr string) (string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", domain.NewEvaluationError(expr, "empty expression", nil)
	}
	for _, r := range expr {
		if !allowedRune(r) {
			return "", domain.NewEvaluationError(expr, fmt.Sprintf("unexpected character %q", r), nil)
		}
	}
	if strings.Contains(expr, "..") {
		return "", domain.NewEvaluationError(expr, "unexpected operator ..", nil)
	}
	for _, ident := range identifierPattern.FindAllString(expr, -1) {
		if keywords[ident] || strings.HasPrefix(ident, "__") {
			return "", domain.NewEvaluationError(expr, fmt.Sprintf("reserved name %q", ident), nil)
		}
	}
	// "--" opens a Lua comment; in arithmetic it means minus a negation.
	for strings.Contains(expr, "--") {
		expr = strings.ReplaceAll(expr, "--", "- -")
	}
	return "return (" + expr + ")", nil
}

func allowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '\t', r == '\n', r == '\r':
		return true
	}
	return strings.ContainsRune("_+-*/^%().,", r)
}

type machine struct {
	expr  string
	state *backend.State
	bound []string
}

func compile(expr, source string) (*machine, error) {
	l := backend.NewState()
	registerBuiltins(l)
	if err := backend.LoadString(l, source); err != nil {
		return nil, domain.NewEvaluationError(expr, "compile", err)
	}
	// The compiled chunk stays at stack index 1 for the life of the machine.
	return &machine{expr: expr, state: l}, nil
}

func (m *machine) call(bindings map[string]float64) (value float64, err error) {
	l := m.state
	defer func() {
		if r := recover(); r != nil {
			value, err = math.NaN(), domain.NewEvaluationError(m.expr, "interpreter panic", fmt.Errorf("%v", r))
		}
		l.SetTop(1)
		m.reset()
	}()

	for name, v := range bindings {
		if !bindingPattern.MatchString(name) || keywords[name] {
			continue
		}
		if _, builtin := functions[name]; builtin {
			continue
		}
		l.PushNumber(v)
		l.SetGlobal(name)
		m.bound = append(m.bound, name)
	}

	l.PushValue(1)
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return math.NaN(), domain.NewEvaluationError(m.expr, "runtime error", err)
	}
	v, ok := l.ToNumber(-1)
	if !ok {
		return math.NaN(), domain.NewEvaluationError(m.expr, "result is not a number", nil)
	}
	if !domain.Defined(v) {
		return math.NaN(), domain.NewEvaluationError(m.expr, "result is not finite", nil)
	}
	return v, nil
}

// reset restores every global a binding shadowed.
func (m *machine) reset() {
	l := m.state
	for _, name := range m.bound {
		if c, ok := constants[name]; ok {
			l.PushNumber(c)
		} else {
			l.PushNil()
		}
		l.SetGlobal(name)
	}
	m.bound = m.bound[:0]
}
