package codegen

import "fmt"

// emitArenaTemp hoists a handle-producing expression to a named
// temporary at the current indent and tracks it for later flush or
// adoption. At global scope (no enclosing function) there is nowhere
// to pre-declare a statement, so the expression is returned inline.
func (g *Generator) emitArenaTemp(exprStr string) string {
	if g.currentFunction == nil {
		return exprStr
	}
	name := fmt.Sprintf("__htmp_%d__", g.arenaTempSerial)
	g.arenaTempSerial++
	g.writeLine(fmt.Sprintf("RtHandleV2 *%s = %s;", name, exprStr))
	g.arenaTemps = append(g.arenaTemps, name)
	return name
}
