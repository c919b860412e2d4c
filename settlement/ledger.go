package settlement

// AggregateBalances folds a transaction snapshot into per-person balances
// in the reference currency. The person set is the union of every payer
// and every beneficiary entry. Each transaction's converted amount counts
// fully toward the payer's Paid and is split equally over the beneficiary
// list, one share per entry, so a duplicated name owes twice.
//
// Transactions with an empty beneficiary list contribute to neither side:
// a cost nobody benefits from cannot be split.
func AggregateBalances(txs []Transaction, refCurrency string, rates Rates) (map[string]NetBalance, error) {
	paid := make(map[string]float64)
	owes := make(map[string]float64)
	people := make(map[string]bool)

	for _, tx := range txs {
		people[tx.Payer] = true
		for _, b := range tx.Beneficiaries {
			people[b] = true
		}

		if len(tx.Beneficiaries) == 0 {
			continue
		}

		amount, err := Convert(tx.Amount, tx.Currency, refCurrency, rates)
		if err != nil {
			return nil, err
		}

		paid[tx.Payer] += amount
		share := amount / float64(len(tx.Beneficiaries))
		for _, b := range tx.Beneficiaries {
			owes[b] += share
		}
	}

	balances := make(map[string]NetBalance, len(people))
	for p := range people {
		balances[p] = NetBalance{
			Paid: round2(paid[p]),
			Owes: round2(owes[p]),
			Net:  round2(paid[p] - owes[p]),
		}
	}
	return balances, nil
}
