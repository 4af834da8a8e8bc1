package detect

import "sort"

// The literal index is a byte-trie Aho-Corasick automaton over the literals
// extracted from each rule pattern. A single pass over the input yields the
// candidate rule indices; rules without usable literals are always candidates.
// Guarantee: candidates(input) is a superset of the rules whose pattern
// matches input. False positives are fine, false negatives are not.

// acNode is one automaton state. Transitions are keyed by lowercased byte.
type acNode struct {
	next map[byte]*acNode
	fail *acNode
	out  []int // literal ids terminating at this state
}

// literalIndex maps literal substrings to the rule indices requiring them.
type literalIndex struct {
	root       *acNode
	litToRules [][]int
	always     []int
	litCount   int
	ruleCount  int
}

// buildLiteralIndex extracts literals from every pattern and compiles the
// automaton. Built once per RuleSet; read-only afterwards.
func buildLiteralIndex(patterns []string) *literalIndex {
	ix := &literalIndex{root: &acNode{next: make(map[byte]*acNode)}}
	litID := make(map[string]int)

	for idx, pat := range patterns {
		lits := extractLiterals(pat)
		if len(lits) == 0 {
			ix.always = append(ix.always, idx)
			continue
		}
		for _, lit := range lits {
			id, ok := litID[lit]
			if !ok {
				id = len(ix.litToRules)
				litID[lit] = id
				ix.litToRules = append(ix.litToRules, nil)
				ix.insert(lit, id)
			}
			ix.litToRules[id] = append(ix.litToRules[id], idx)
		}
	}

	ix.litCount = len(litID)
	ix.ruleCount = len(patterns)
	ix.buildFailLinks()
	return ix
}

func (ix *literalIndex) insert(lit string, id int) {
	cur := ix.root
	for i := 0; i < len(lit); i++ {
		b := lit[i]
		nxt, ok := cur.next[b]
		if !ok {
			nxt = &acNode{next: make(map[byte]*acNode)}
			cur.next[b] = nxt
		}
		cur = nxt
	}
	cur.out = append(cur.out, id)
}

// buildFailLinks wires BFS failure links and merges suffix outputs.
func (ix *literalIndex) buildFailLinks() {
	queue := make([]*acNode, 0, len(ix.root.next))
	for _, n := range ix.root.next {
		n.fail = ix.root
		queue = append(queue, n)
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for b, nxt := range n.next {
			f := n.fail
			for f != nil && f.next[b] == nil {
				f = f.fail
			}
			if f == nil {
				nxt.fail = ix.root
			} else {
				nxt.fail = f.next[b]
			}
			if len(nxt.fail.out) > 0 {
				nxt.out = append(nxt.out, nxt.fail.out...)
			}
			queue = append(queue, nxt)
		}
	}
}

// candidates returns the rule indices whose literals occur in input, plus all
// always-candidates, sorted ascending and deduplicated so the caller can try
// them in original rule order. Runs in O(len(input)) automaton steps.
func (ix *literalIndex) candidates(input string) []int {
	cands := append([]int(nil), ix.always...)

	n := ix.root
	for i := 0; i < len(input); i++ {
		b := lowerByte(input[i])
		for n != nil && n.next[b] == nil {
			n = n.fail
		}
		if n == nil {
			n = ix.root
			continue
		}
		n = n.next[b]
		for _, id := range n.out {
			cands = append(cands, ix.litToRules[id]...)
		}
	}

	if len(cands) < 2 {
		return cands
	}
	sort.Ints(cands)
	return dedupSorted(cands)
}

func dedupSorted(xs []int) []int {
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
