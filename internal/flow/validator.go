package flow

import "fmt"

// Validate performs the static checks described in §4.4.1: unique
// function parameters, name resolution for every variable and function
// reference, Break only inside a For body, and entrypoint shape (zero
// args, ends with End, no Return among its top-level operations). A
// Return nested inside an If or For body of the entrypoint is not
// rejected.
func (p *Program) Validate() error {
	functions := make(map[string]int, len(p.Functions))
	for name, fn := range p.Functions {
		functions[name] = len(fn.Args)
	}

	globals := varSet{}
	for name := range p.Globals {
		globals.add(name)
	}

	for name, fn := range p.Functions {
		seen := map[string]struct{}{}
		for _, a := range fn.Args {
			if _, dup := seen[a]; dup {
				return fmt.Errorf("function %q: %w", name, ErrNonUniqueArguments())
			}
			seen[a] = struct{}{}
		}

		scoped := globals.clone()
		for _, a := range fn.Args {
			scoped.add(a)
		}

		if err := validateBody(functions, scoped, fn.Operations, true); err != nil {
			return fmt.Errorf("function %q: %w", name, err)
		}
	}

	// The entrypoint is schema-fixed to take zero arguments, so
	// InvalidEntrypoint can never actually be produced here; the check
	// is kept for parity with the error taxonomy and in case a future
	// schema revision adds declared entrypoint parameters.
	const entrypointArgs = 0
	if entrypointArgs != 0 {
		return ErrInvalidEntrypoint()
	}

	return validateBody(functions, globals, p.Entry, false)
}

func validateBody(functions map[string]int, vars varSet, ops []Operation, canReturn bool) error {
	if !canReturn {
		if len(ops) == 0 {
			return ErrExpectedEnd()
		}
		if _, ok := ops[len(ops)-1].(endOp); !ok {
			return ErrExpectedEnd()
		}
	}

	ctx := &valCtx{functions: functions, vars: vars}
	for _, op := range ops {
		if !canReturn {
			if _, ok := op.(returnOp); ok {
				return ErrInvalidReturn()
			}
		}
		if err := op.validate(ctx); err != nil {
			return err
		}
	}
	return nil
}
