package settlement

import "strings"

// SummarizeByKeyword totals each beneficiary's equal share over the
// transactions whose description contains keyword, case-insensitively.
// Historically used with "nocleg" to break out lodging costs. This is a
// parallel aggregation over a subset, not an adjustment to the ledger.
func SummarizeByKeyword(txs []Transaction, keyword, refCurrency string, rates Rates) (map[string]float64, error) {
	keyword = strings.ToLower(keyword)
	summary := make(map[string]float64)

	for _, tx := range txs {
		if !strings.Contains(strings.ToLower(tx.Description), keyword) {
			continue
		}
		if len(tx.Beneficiaries) == 0 {
			continue
		}

		amount, err := Convert(tx.Amount, tx.Currency, refCurrency, rates)
		if err != nil {
			return nil, err
		}

		share := amount / float64(len(tx.Beneficiaries))
		for _, b := range tx.Beneficiaries {
			summary[b] += share
		}
	}

	for person, total := range summary {
		summary[person] = round2(total)
	}
	return summary, nil
}
