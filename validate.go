package jobs

// CheckRequiredParams validates a task's supplied parameters against its
// declared required-parameter contract.
//
// Tasks implementing ParamChecker validate themselves. Otherwise every name
// from ParamSpec must be present in the parameter map; the first missing name
// in declaration order is reported as a MissingParameter validation error.
// Tasks declaring nothing always pass.
func CheckRequiredParams(task Info) error {
	if checker, ok := task.(ParamChecker); ok {
		return checker.CheckParams()
	}
	spec, ok := task.(ParamSpec)
	if !ok {
		return nil
	}
	params := task.Params()
	for _, name := range spec.RequiredParams() {
		if _, present := params[name]; !present {
			return MissingParameter(name)
		}
	}
	return nil
}
