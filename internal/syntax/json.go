package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

type object = map[string]interface{}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return object{
			"type":  "File",
			"pos":   n.pos.String(),
			"decls": mapSlice(n.Decls, func(d *FuncDecl) interface{} { return toJSON(d) }),
		}

	case *FuncDecl:
		m := object{
			"type":   "FuncDecl",
			"pos":    n.pos.String(),
			"name":   n.Name.Value,
			"params": mapSlice(n.Params, func(f *Param) interface{} { return toJSON(f) }),
			"result": typeString(n.Result),
		}
		if n.Body != nil {
			m["body"] = toJSON(n.Body)
		}
		return m

	case *Param:
		return object{
			"type":      "Param",
			"pos":       n.pos.String(),
			"mut":       n.Mut,
			"name":      n.Name.Value,
			"paramtype": typeString(n.Type),
		}

	case *BlockExpr:
		m := object{
			"type":   "BlockExpr",
			"pos":    n.pos.String(),
			"stmts":  mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
			"rbrace": n.Rbrace.String(),
		}
		if n.Tail != nil {
			m["tail"] = toJSON(n.Tail)
		}
		return m

	case *IfExpr:
		m := object{
			"type": "IfExpr",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"then": toJSON(n.Then),
		}
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *LetStmt:
		m := object{
			"type": "LetStmt",
			"pos":  n.pos.String(),
			"mut":  n.Mut,
			"name": n.Name.Value,
		}
		if n.Type != nil {
			m["vartype"] = typeString(n.Type)
		}
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}
		return m

	case *WhileStmt:
		return object{
			"type": "WhileStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"body": toJSON(n.Body),
		}

	case *ForStmt:
		return object{
			"type": "ForStmt",
			"pos":  n.pos.String(),
			"mut":  n.Mut,
			"var":  n.Var.Value,
			"lo":   toJSON(n.Lo),
			"hi":   toJSON(n.Hi),
			"body": toJSON(n.Body),
		}

	case *LoopStmt:
		return object{
			"type": "LoopStmt",
			"pos":  n.pos.String(),
			"body": toJSON(n.Body),
		}

	case *ReturnStmt:
		m := object{
			"type": "ReturnStmt",
			"pos":  n.pos.String(),
		}
		if n.Result != nil {
			m["result"] = toJSON(n.Result)
		}
		return m

	case *BranchStmt:
		return object{
			"type": "BranchStmt",
			"pos":  n.pos.String(),
			"tok":  n.Tok.String(),
		}

	case *ExprStmt:
		return object{
			"type": "ExprStmt",
			"pos":  n.pos.String(),
			"semi": n.Semi,
			"x":    toJSON(n.X),
		}

	case *EmptyStmt:
		return object{
			"type": "EmptyStmt",
			"pos":  n.pos.String(),
		}

	case *Name:
		return object{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		return object{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *TypeName:
		return object{
			"type":  "TypeName",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *Operation:
		m := object{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}
		if n.Y != nil {
			m["y"] = toJSON(n.Y)
		}
		return m

	case *AssignExpr:
		return object{
			"type": "AssignExpr",
			"pos":  n.pos.String(),
			"lhs":  n.LHS.Value,
			"rhs":  toJSON(n.RHS),
		}

	case *CallExpr:
		return object{
			"type": "CallExpr",
			"pos":  n.pos.String(),
			"fun":  n.Fun.Value,
			"args": mapSlice(n.Args, exprJSON),
		}

	case *MacroCall:
		return object{
			"type":  "MacroCall",
			"pos":   n.pos.String(),
			"macro": n.Fun.Value,
			"args":  mapSlice(n.Args, exprJSON),
		}

	case *ParenExpr:
		return object{
			"type": "ParenExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	default:
		return object{"type": "Unknown"}
	}
}

func exprJSON(e Expr) interface{} { return toJSON(e) }

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = f(v)
	}
	return out
}
