package grammar

// OfRex returns a small built-in grammar over the surface syntax a Rex
// parser accepts (§6 of the design this package was built against):
// identifiers, thin and fat arrows, sum and product, parenthesized
// grouping, and instances written as bare names (no argument lists).
// It exists for the same reason the original implementation ships a
// grammar alongside its generator: as the engine's default axiom for
// exploratory sentence generation, with "Rex" as its start symbol.
func OfRex() *Grammar {
	g := New()

	name := g.AddTerminal("x")
	thinArrow := g.AddTerminal("->")
	fatTx := g.AddTerminal("=>")
	fatRx := g.AddTerminal("<=")
	plus := g.AddTerminal("+")
	lparen := g.AddTerminal("(")
	rparen := g.AddTerminal(")")

	rex := g.AddNonterminal("Rex")
	sum := g.AddNonterminal("Sum")
	product := g.AddNonterminal("Product")
	factor := g.AddNonterminal("Factor")
	tar := g.AddNonterminal("ThinArrowRule")
	far := g.AddNonterminal("FatArrowRule")
	instance := g.AddNonterminal("Instance")

	g.AddProduction(rex, sum)

	g.AddProduction(sum, product)
	g.AddProduction(sum, product, plus, sum)

	g.AddProduction(product, factor)
	g.AddProduction(product, factor, product)

	g.AddProduction(factor, instance)
	g.AddProduction(factor, tar)
	g.AddProduction(factor, far)
	g.AddProduction(factor, lparen, sum, rparen)

	g.AddProduction(instance, name)

	g.AddProduction(tar, name, thinArrow, name)

	g.AddProduction(far, name, fatTx, name)
	g.AddProduction(far, name, fatRx, name)

	return g
}
