package tooltip

// activationSet is the set of asserted activation methods.
type activationSet uint8

var orderedMethods = []ActivationMethod{MethodPointer, MethodFocus, MethodTooltip}

func methodBit(m ActivationMethod) activationSet {
	switch m {
	case MethodPointer:
		return 1 << 0
	case MethodFocus:
		return 1 << 1
	case MethodTooltip:
		return 1 << 2
	default:
		return 0
	}
}

func (s activationSet) with(m ActivationMethod) activationSet {
	return s | methodBit(m)
}

func (s activationSet) without(m ActivationMethod) activationSet {
	return s &^ methodBit(m)
}

func (s activationSet) has(m ActivationMethod) bool {
	bit := methodBit(m)
	return bit != 0 && s&bit != 0
}

func (s activationSet) empty() bool {
	return s == 0
}

func (s activationSet) list() []ActivationMethod {
	if s.empty() {
		return nil
	}
	out := make([]ActivationMethod, 0, len(orderedMethods))
	for _, m := range orderedMethods {
		if s.has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s activationSet) strings() []string {
	methods := s.list()
	if len(methods) == 0 {
		return nil
	}
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = string(m)
	}
	return out
}

// methodForEvent maps an inbound event to the method it asserts and whether
// it activates or deactivates.
func methodForEvent(target Target, kind EventKind) (ActivationMethod, bool, bool) {
	switch kind {
	case PointerEnter, PointerLeave:
		method := MethodPointer
		if target == TargetOverlay {
			method = MethodTooltip
		}
		return method, kind == PointerEnter, true
	case FocusIn, FocusOut:
		return MethodFocus, kind == FocusIn, true
	default:
		return "", false, false
	}
}
