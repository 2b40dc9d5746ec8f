package mwlmap

import "fmt"

// SymbolClosure is the hierarchical reference graph of reachable symbols,
// rooted at an implicit level-0 sentinel (index -1; never materialized as a
// Node). Nodes live in a flat arena and reference each other by index, which
// keeps the tree free of pointer lifetime entanglement and trivially
// movable.
type SymbolClosure struct {
	Nodes []Node
	Range VersionRange

	// lookup maps compilation-unit name -> symbol name -> node indices,
	// used to detect one-definition-rule violations.
	lookup map[string]map[string][]int
}

// NodeKind tags the concrete node variants of a SymbolClosure entry.
type NodeKind int

const (
	NodeReal NodeKind = iota
	NodeLinkerGenerated
	// NodePlaceholder is the anonymous dummy child inserted below a
	// "_dtors$99" node; it has no printed representation.
	NodePlaceholder
)

// UnreferencedDuplicate is one alternate, unselected definition of a symbol,
// reported under its owning Real node for diagnostics only.
type UnreferencedDuplicate struct {
	Type       SymbolType
	Bind       SymbolBind
	ModuleName string
	SourceName string
}

// Node is one entry in a SymbolClosure: Real (name, type/bind, module,
// source), LinkerGenerated (name only), or Placeholder (nothing).
// Children/Parent are indices into the owning SymbolClosure.Nodes slice;
// Parent is -1 for a level-1 root child.
type Node struct {
	Kind  NodeKind
	Level int
	Name  string

	// Real-only fields.
	Type                   SymbolType
	Bind                   SymbolBind
	ModuleName             string
	SourceName             string
	UnreferencedDuplicates []UnreferencedDuplicate

	Parent   int
	Children []int
}

// compilationUnitName derives an object's compilation-unit identity: its
// source name if present, else its module name. The same rule serves the
// SymbolClosure ODR map and the SectionLayout adjacency heuristics.
func compilationUnitName(module, source string) string {
	if source != "" {
		return source
	}
	return module
}

// scanSymbolClosure scans one symbol closure. The cursor stops (without
// consuming) at the first byte that matches none of the node patterns.
// Unresolved-symbol lines encountered anywhere in the closure are appended to
// unresolved with the input line they sat on; see UnresolvedSymbol.
func scanSymbolClosure(c *cursor, warn *warningSink, unresolved *[]UnresolvedSymbol) (*SymbolClosure, error) {
	sc := &SymbolClosure{Range: fullVersionRange(), lookup: map[string]map[string][]int{}}

	currNode := -1 // -1 denotes the level-0 sentinel
	currLevel := 0

	// attachChild walks currNode up to level L-1 by following Parent links,
	// then appends n as its child.
	attachChild := func(n Node) int {
		parent := currNode
		for lvl := currLevel; lvl >= n.Level; lvl-- {
			if parent == -1 {
				break
			}
			parent = sc.Nodes[parent].Parent
		}
		n.Parent = parent
		idx := len(sc.Nodes)
		sc.Nodes = append(sc.Nodes, n)
		if parent != -1 {
			sc.Nodes[parent].Children = append(sc.Nodes[parent].Children, idx)
		}
		currNode = idx
		currLevel = n.Level
		return idx
	}

	for {
		nodeLine := c.line

		if groups := c.match(reClosureNormalNode); groups != nil {
			level := decInt(groups[1])
			if level <= 0 {
				return nil, newScanError(ErrSymbolClosureInvalidHierarchy, c.line)
			}
			if currLevel+1 < level {
				return nil, newScanError(ErrSymbolClosureHierarchySkip, c.line)
			}
			name := str(groups[2])
			symType, okType := symbolTypeNames[str(groups[3])]
			if !okType {
				return nil, newScanError(ErrSymbolClosureInvalidSymbolType, c.line)
			}
			symBind, okBind := symbolBindNames[str(groups[4])]
			if !okBind {
				return nil, newScanError(ErrSymbolClosureInvalidSymbolBind, c.line)
			}
			module := str(groups[5])
			source := str(groups[6])

			idx := attachChild(Node{
				Kind:       NodeReal,
				Level:      level,
				Name:       name,
				Type:       symType,
				Bind:       symBind,
				ModuleName: module,
				SourceName: source,
			})

			// Unreferenced-duplicate block, same level and name as the node.
			if hdr := c.match(reClosureUnrefHdr); hdr != nil {
				if decInt(hdr[1]) != level {
					return nil, newScanError(ErrSymbolClosureUnrefDupsHierarchyMismatch, c.line)
				}
				if str(hdr[2]) != name {
					return nil, newScanError(ErrSymbolClosureUnrefDupsNameMismatch, c.line)
				}
				for {
					e := c.match(reClosureUnrefEntry)
					if e == nil {
						break
					}
					if decInt(e[1]) != level {
						return nil, newScanError(ErrSymbolClosureUnrefDupsHierarchyMismatch, c.line)
					}
					dupType, okDupType := symbolTypeNames[str(e[2])]
					if !okDupType {
						return nil, newScanError(ErrSymbolClosureInvalidSymbolType, c.line)
					}
					dupBind, okDupBind := symbolBindNames[str(e[3])]
					if !okDupBind {
						return nil, newScanError(ErrSymbolClosureInvalidSymbolBind, c.line)
					}
					sc.Nodes[idx].UnreferencedDuplicates = append(sc.Nodes[idx].UnreferencedDuplicates, UnreferencedDuplicate{
						Type:       dupType,
						Bind:       dupBind,
						ModuleName: str(e[4]),
						SourceName: str(e[5]),
					})
				}
				if len(sc.Nodes[idx].UnreferencedDuplicates) == 0 {
					return nil, newScanError(ErrSymbolClosureUnrefDupsEmpty, c.line)
				}
				sc.Range.narrowMin(Version2_3_3_build137)
			}

			cu := compilationUnitName(module, source)
			if sc.lookup[cu] == nil {
				sc.lookup[cu] = map[string][]int{}
			}
			if len(sc.lookup[cu][name]) > 0 {
				// For legal linker maps this should only ever happen in
				// repeat-name compilation units.
				warn.emit(warn.cfg.ODRViolationSymbolClosure, nodeLine,
					fmt.Sprintf("%q seen again in %q", name, cu))
			}
			sc.lookup[cu][name] = append(sc.lookup[cu][name], idx)

			// Though I do not understand it, the following is a normal
			// occurrence for _dtors$99:
			// "  1] _dtors$99 (object,global) found in Linker Generated Symbol File "
			// "    3] .text (section,local) found in xyz.cpp lib.a"
			if name == "_dtors$99" && module == "Linker Generated Symbol File" {
				attachChild(Node{Kind: NodePlaceholder, Level: level + 1})
				sc.Range.narrowMin(Version3_0_4)
			}
			continue
		}

		if groups := c.match(reClosureLinkerGen); groups != nil {
			level := decInt(groups[1])
			if level <= 0 {
				return nil, newScanError(ErrSymbolClosureInvalidHierarchy, c.line)
			}
			if currLevel+1 < level {
				return nil, newScanError(ErrSymbolClosureHierarchySkip, c.line)
			}
			attachChild(Node{Kind: NodeLinkerGenerated, Level: level, Name: str(groups[2])})
			continue
		}

		if groups := c.match(reUnresolvedSymbol); groups != nil {
			*unresolved = append(*unresolved, UnresolvedSymbol{Line: nodeLine, Name: str(groups[1])})
			continue
		}

		break
	}

	if len(sc.Nodes) == 0 {
		return nil, nil // empty closures are dropped
	}
	return sc, nil
}
