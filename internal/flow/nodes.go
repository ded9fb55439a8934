package flow

// varSet is the set of variable names known to be in-scope at a point
// in a function body. It is a reference type: mutations made while
// validating one operation are visible to the operations that follow
// it, matching the source's single mutable HashSet threaded through
// validation (a Variable declared inside an `if` branch is considered
// declared for code that follows the `if`, even though only one branch
// runs at a time — validation is purely syntactic).
type varSet map[string]struct{}

func (s varSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s varSet) add(name string) { s[name] = struct{}{} }

func (s varSet) clone() varSet {
	out := make(varSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// valCtx carries the state threaded through a single function's
// validation pass: the known function arities, the live variable set,
// and whether the current position is lexically inside a For body (the
// only place Break is legal).
type valCtx struct {
	functions map[string]int
	vars      varSet
	inFor     bool
}

func (c *valCtx) withInFor() *valCtx {
	return &valCtx{functions: c.functions, vars: c.vars, inFor: true}
}

// --- Operations ---

type endOp struct{}

func (endOp) validate(*valCtx) error { return nil }
func (endOp) execute(*Interpreter, *Scope) (Signal, error) {
	return Signal{Kind: SignalEnd}, nil
}

type returnOp struct{ Result Value }

func (o returnOp) validate(ctx *valCtx) error { return o.Result.validate(ctx) }
func (o returnOp) execute(in *Interpreter, scope *Scope) (Signal, error) {
	v, err := o.Result.evaluate(in, scope)
	if err != nil {
		return Signal{}, err
	}
	return Signal{Kind: SignalReturn, Value: v}, nil
}

type breakOp struct{}

func (breakOp) validate(ctx *valCtx) error {
	if !ctx.inFor {
		return ErrInvalidBreak()
	}
	return nil
}
func (breakOp) execute(*Interpreter, *Scope) (Signal, error) {
	return Signal{Kind: SignalBreak}, nil
}

type ifOp struct {
	Condition     Value
	Truthy, Falsy []Operation
}

func (o ifOp) validate(ctx *valCtx) error {
	if err := o.Condition.validate(ctx); err != nil {
		return err
	}
	for _, op := range o.Truthy {
		if err := op.validate(ctx); err != nil {
			return err
		}
	}
	for _, op := range o.Falsy {
		if err := op.validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (o ifOp) execute(in *Interpreter, scope *Scope) (Signal, error) {
	cond, err := o.Condition.evaluate(in, scope)
	if err != nil {
		return Signal{}, err
	}
	b, err := cond.Boolean()
	if err != nil {
		return Signal{}, err
	}
	if b {
		return in.executeBlock(o.Truthy, scope)
	}
	return in.executeBlock(o.Falsy, scope)
}

type forOp struct {
	Start, End Value
	Index      string
	Body       []Operation
}

func (o forOp) validate(ctx *valCtx) error {
	if err := o.Start.validate(ctx); err != nil {
		return err
	}
	if err := o.End.validate(ctx); err != nil {
		return err
	}
	ctx.vars.add(o.Index)
	bodyCtx := ctx.withInFor()
	for _, op := range o.Body {
		if err := op.validate(bodyCtx); err != nil {
			return err
		}
	}
	return nil
}

func (o forOp) execute(in *Interpreter, scope *Scope) (Signal, error) {
	startL, err := o.Start.evaluate(in, scope)
	if err != nil {
		return Signal{}, err
	}
	endL, err := o.End.evaluate(in, scope)
	if err != nil {
		return Signal{}, err
	}
	start, err := startL.NonNullInteger()
	if err != nil {
		return Signal{}, err
	}
	end, err := endL.NonNullInteger()
	if err != nil {
		return Signal{}, err
	}

	for i := start; i < end; i++ {
		scope.Set(o.Index, Int(i))
		sig, err := in.executeBlock(o.Body, scope)
		if err != nil {
			return Signal{}, err
		}
		switch sig.Kind {
		case SignalBreak:
			return Signal{Kind: SignalContinue}, nil
		case SignalContinue:
			continue
		default: // Return, End propagate out of the loop
			return sig, nil
		}
	}
	return Signal{Kind: SignalContinue}, nil
}

type variableOp struct {
	Name  string
	Value Value
}

func (o variableOp) validate(ctx *valCtx) error {
	if err := o.Value.validate(ctx); err != nil {
		return err
	}
	ctx.vars.add(o.Name)
	return nil
}

func (o variableOp) execute(in *Interpreter, scope *Scope) (Signal, error) {
	v, err := o.Value.evaluate(in, scope)
	if err != nil {
		return Signal{}, err
	}
	scope.Set(o.Name, v)
	return Signal{Kind: SignalContinue}, nil
}

type functionCallOp struct {
	Name string
	Args []Value
}

func (o functionCallOp) validate(ctx *valCtx) error {
	return validateCall(ctx, o.Name, o.Args)
}

func (o functionCallOp) execute(in *Interpreter, scope *Scope) (Signal, error) {
	args, err := evaluateArgs(in, scope, o.Args)
	if err != nil {
		return Signal{}, err
	}
	if _, err := in.callFunction(o.Name, args); err != nil {
		return Signal{}, err
	}
	return Signal{Kind: SignalContinue}, nil
}

type brightnessOp struct{ Value Value }

func (o brightnessOp) validate(ctx *valCtx) error { return o.Value.validate(ctx) }
func (o brightnessOp) execute(in *Interpreter, scope *Scope) (Signal, error) {
	v, err := o.Value.evaluate(in, scope)
	if err != nil {
		return Signal{}, err
	}
	level, err := v.NonNullInteger()
	if err != nil {
		return Signal{}, err
	}
	in.pixels.Brightness(clampU8(level))
	return Signal{Kind: SignalContinue}, nil
}

type fillOp struct{ Red, Green, Blue Value }

func (o fillOp) validate(ctx *valCtx) error {
	if err := o.Red.validate(ctx); err != nil {
		return err
	}
	if err := o.Blue.validate(ctx); err != nil {
		return err
	}
	return o.Green.validate(ctx)
}

func (o fillOp) execute(in *Interpreter, scope *Scope) (Signal, error) {
	r, g, b, err := evaluateRGB(in, scope, o.Red, o.Green, o.Blue)
	if err != nil {
		return Signal{}, err
	}
	in.pixels.Fill(r, g, b)
	return Signal{Kind: SignalContinue}, nil
}

type setOp struct{ Index, Red, Green, Blue Value }

func (o setOp) validate(ctx *valCtx) error {
	if err := o.Index.validate(ctx); err != nil {
		return err
	}
	if err := o.Red.validate(ctx); err != nil {
		return err
	}
	if err := o.Blue.validate(ctx); err != nil {
		return err
	}
	return o.Green.validate(ctx)
}

func (o setOp) execute(in *Interpreter, scope *Scope) (Signal, error) {
	idxL, err := o.Index.evaluate(in, scope)
	if err != nil {
		return Signal{}, err
	}
	idx, err := idxL.NonNullInteger()
	if err != nil {
		return Signal{}, err
	}
	r, g, b, err := evaluateRGB(in, scope, o.Red, o.Green, o.Blue)
	if err != nil {
		return Signal{}, err
	}
	in.pixels.Set(clampU16(idx), r, g, b)
	return Signal{Kind: SignalContinue}, nil
}

type showOp struct{}

func (showOp) validate(*valCtx) error { return nil }
func (showOp) execute(in *Interpreter, _ *Scope) (Signal, error) {
	in.pixels.Show()
	return Signal{Kind: SignalContinue}, nil
}

type sleepOp struct{ Duration Value }

func (o sleepOp) validate(ctx *valCtx) error { return o.Duration.validate(ctx) }
func (o sleepOp) execute(in *Interpreter, scope *Scope) (Signal, error) {
	v, err := o.Duration.evaluate(in, scope)
	if err != nil {
		return Signal{}, err
	}
	d, err := ParseDuration(v)
	if err != nil {
		return Signal{}, err
	}
	in.sleep(d)
	return Signal{Kind: SignalContinue}, nil
}

// --- Values ---

type variableExpr struct{ Name string }

func (e variableExpr) validate(ctx *valCtx) error {
	if !ctx.vars.has(e.Name) {
		return ErrUnknownVariable(e.Name)
	}
	return nil
}

func (e variableExpr) evaluate(_ *Interpreter, scope *Scope) (Literal, error) {
	v, ok := scope.Get(e.Name)
	if !ok {
		return Literal{}, ErrUnknownVariable(e.Name)
	}
	return v, nil
}

type literalExpr struct{ Value Literal }

func (e literalExpr) validate(*valCtx) error { return nil }
func (e literalExpr) evaluate(*Interpreter, *Scope) (Literal, error) {
	return e.Value, nil
}

type unaryExpr struct {
	Operator UnaryOperator
	Value    Value
}

func (e unaryExpr) validate(ctx *valCtx) error { return e.Value.validate(ctx) }
func (e unaryExpr) evaluate(in *Interpreter, scope *Scope) (Literal, error) {
	v, err := e.Value.evaluate(in, scope)
	if err != nil {
		return Literal{}, err
	}
	return EvaluateUnary(e.Operator, v)
}

type binaryExpr struct {
	Operator BinaryOperator
	Lhs, Rhs Value
}

func (e binaryExpr) validate(ctx *valCtx) error {
	if err := e.Lhs.validate(ctx); err != nil {
		return err
	}
	return e.Rhs.validate(ctx)
}

func (e binaryExpr) evaluate(in *Interpreter, scope *Scope) (Literal, error) {
	lhs, err := e.Lhs.evaluate(in, scope)
	if err != nil {
		return Literal{}, err
	}
	rhs, err := e.Rhs.evaluate(in, scope)
	if err != nil {
		return Literal{}, err
	}
	return EvaluateBinary(e.Operator, lhs, rhs)
}

type comparisonExpr struct {
	Comparator Comparator
	Lhs, Rhs   Value
}

func (e comparisonExpr) validate(ctx *valCtx) error {
	if err := e.Lhs.validate(ctx); err != nil {
		return err
	}
	return e.Rhs.validate(ctx)
}

func (e comparisonExpr) evaluate(in *Interpreter, scope *Scope) (Literal, error) {
	lhs, err := e.Lhs.evaluate(in, scope)
	if err != nil {
		return Literal{}, err
	}
	rhs, err := e.Rhs.evaluate(in, scope)
	if err != nil {
		return Literal{}, err
	}
	return EvaluateComparator(e.Comparator, lhs, rhs)
}

type functionCallExpr struct {
	Name string
	Args []Value
}

func (e functionCallExpr) validate(ctx *valCtx) error {
	return validateCall(ctx, e.Name, e.Args)
}

func (e functionCallExpr) evaluate(in *Interpreter, scope *Scope) (Literal, error) {
	args, err := evaluateArgs(in, scope, e.Args)
	if err != nil {
		return Literal{}, err
	}
	return in.callFunction(e.Name, args)
}

// --- shared helpers ---

func validateCall(ctx *valCtx, name string, args []Value) error {
	arity, ok := ctx.functions[name]
	if !ok {
		return ErrUnknownFunction(name)
	}
	if arity != len(args) {
		return ErrMismatchArguments(name, arity, len(args))
	}
	for _, a := range args {
		if err := a.validate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func evaluateArgs(in *Interpreter, scope *Scope, args []Value) ([]Literal, error) {
	out := make([]Literal, len(args))
	for i, a := range args {
		v, err := a.evaluate(in, scope)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evaluateRGB(in *Interpreter, scope *Scope, red, green, blue Value) (r, g, b uint8, err error) {
	rl, err := red.evaluate(in, scope)
	if err != nil {
		return 0, 0, 0, err
	}
	gl, err := green.evaluate(in, scope)
	if err != nil {
		return 0, 0, 0, err
	}
	bl, err := blue.evaluate(in, scope)
	if err != nil {
		return 0, 0, 0, err
	}
	ri, err := rl.NonNullInteger()
	if err != nil {
		return 0, 0, 0, err
	}
	gi, err := gl.NonNullInteger()
	if err != nil {
		return 0, 0, 0, err
	}
	bi, err := bl.NonNullInteger()
	if err != nil {
		return 0, 0, 0, err
	}
	return clampU8(ri), clampU8(gi), clampU8(bi), nil
}

func clampU8(n int64) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

func clampU16(n int64) uint16 {
	if n < 0 {
		return 0
	}
	if n > 65535 {
		return 65535
	}
	return uint16(n)
}
