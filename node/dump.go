package node

import "strings"

// Dump formats the tree rooted at n, one node per line, children indented
// by two spaces:
//
//	group() {
//	  square(size = [1, 1], center = false);
//	}
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Tags().String())
	sb.WriteString(n.Name())
	sb.WriteByte('(')
	sb.WriteString(n.Params())
	sb.WriteByte(')')

	children := n.Children()
	if len(children) == 0 {
		sb.WriteString(";\n")
		return
	}
	sb.WriteString(" {\n")
	for _, c := range children {
		dump(sb, c, depth+1)
	}
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("}\n")
}
