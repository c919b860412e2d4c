package settlement

// Convert translates amount from one currency into another using the rate
// table. Equal codes are an exact identity, even for codes the table does
// not know. A real conversion needs both codes present and returns a
// MissingRateError naming every absent one otherwise.
func Convert(amount float64, from, to string, rates Rates) (float64, error) {
	if from == to {
		return amount, nil
	}

	var missing []string
	fromRate, ok := rates[from]
	if !ok {
		missing = append(missing, from)
	}
	toRate, ok := rates[to]
	if !ok {
		missing = append(missing, to)
	}
	if len(missing) > 0 {
		return 0, &MissingRateError{Codes: missing}
	}

	return amount * fromRate / toRate, nil
}
