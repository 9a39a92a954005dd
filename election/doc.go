// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election tallies rank-and-approve elections.

Every function in this package is pure: it reads an Election snapshot and
returns new values. Nothing is cached between calls.

# Pipeline

	results := election.Pairwise(e)
	victories := election.Victories(results)
	smith := election.SmithSet(victories, e.CandidateNames()...)
	rankings := election.Rank(smith, victories, e)

Tally runs the same stages after Validate and adds the approval and Borda
summaries:

	res, err := election.Tally(e, election.DefaultWeights())

# Pairwise Tally

For each unordered pair of candidates (candidate-list order, i < j) every
ballot prefers the candidate it ranks earlier. A candidate missing from a
ranking sits below every ranked one; a ballot ranking neither abstains.

# Victory Graph

Strict pairwise wins become directed edges winner → loser with the vote
difference as margin. Ties produce no edge.

# Smith Set

The defeat graph is split into strongly connected components (Tarjan). The
Smith set is the union of components no outside candidate defeats. Candidates
with only tied matchups are singleton components and always belong to it.

# Ranking

Smith-set members are ordered by a composite score:

	0.4·netVictories + 0.3·avgMargin + 0.3·approvals

Scores within ScoreTolerance share a rank and are flagged IsTied.

# Validation

Validate reports the first malformed input as a *ValidationError: duplicate
candidate ids or names, empty ids, and ballots naming unknown ids.
*/
package election
