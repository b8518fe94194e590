package step

// Run evaluates script in a fresh session and returns the final stack.
// Raw parameters are parsed first; any that isn't a number fails the run
// before evaluation begins. A file sink opened by the script is closed
// before Run returns.
func Run(script string, rawParams []string, opts Options) ([]float64, error) {
	params, err := ParseParams(rawParams)
	if err != nil {
		return nil, err
	}
	opts.Params = params

	session := NewSession(opts)
	err = session.Evaluate(script)
	if closeErr := session.Close(); err == nil && closeErr != nil {
		err = &Error{Kind: IO, Token: "output", Err: closeErr}
	}
	return session.Stack().Values(), err
}
