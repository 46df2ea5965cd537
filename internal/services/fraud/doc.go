/*
Package fraud provides the transaction risk scoring engine.

The engine maintains an in-memory directed graph of observed
sender->receiver pairs and combines four signals into a single integer
risk score:

  - amount: tiered by transaction value
  - cycle: whether a money cycle is reachable from the sender
  - velocity: time elapsed since the sender's previous transaction
  - out-degree: number of distinct receivers the sender has paid

Usage:

	engine := fraud.NewEngine(txRepo)

	score, err := engine.Score(ctx, tx)
	if err != nil {
	    // history lookup failed; the store is unavailable
	}
	tx.FraudRiskScore = score.Total()

	level := fraud.RiskLevel(tx.FraudRiskScore)

Concurrency:

The graph is owned exclusively by the engine. One scoring pass appears
atomic to every other pass: the edge insert, cycle check, and out-degree
read run under a single mutex. The history read happens before the locked
section so the engine never blocks on the store while holding the lock.

Limitations:

The graph is not persisted and only grows. If persisting a scored
transaction fails, the edge recorded during scoring remains; scoring is
deliberately kept free of store writes, so the leaked edge is accepted.
*/
package fraud
