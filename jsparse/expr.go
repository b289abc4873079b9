package jsparse

import (
	gojaast "github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"

	"github.com/mna/jsrename/ast"
)

func (c *converter) expr(e gojaast.Expression) (ast.Expr, error) {
	switch e := e.(type) {
	case nil:
		return nil, nil

	case *gojaast.Identifier:
		return c.ident(e), nil

	case *gojaast.ThisExpression:
		return &ast.ThisExpr{Start_: int(e.Idx)}, nil

	case *gojaast.SuperExpression:
		return &ast.SuperExpr{Start_: int(e.Idx)}, nil

	case *gojaast.NullLiteral:
		return &ast.Literal{Start_: int(e.Idx), Raw: e.Literal, Kind: ast.LiteralNull}, nil
	case *gojaast.BooleanLiteral:
		return &ast.Literal{Start_: int(e.Idx), Raw: e.Literal, Kind: ast.LiteralBool}, nil
	case *gojaast.NumberLiteral:
		return &ast.Literal{Start_: int(e.Idx), Raw: e.Literal, Kind: ast.LiteralNumber}, nil
	case *gojaast.StringLiteral:
		return &ast.Literal{Start_: int(e.Idx), Raw: e.Literal, Kind: ast.LiteralString}, nil
	case *gojaast.RegExpLiteral:
		return &ast.Literal{Start_: int(e.Idx), Raw: e.Literal, Kind: ast.LiteralRegExp}, nil

	case *gojaast.TemplateLiteral:
		return c.templateLiteral(e)

	case *gojaast.ArrayLiteral:
		els := make([]ast.Expr, 0, len(e.Value))
		for _, v := range e.Value {
			ce, err := c.expr(v)
			if err != nil {
				return nil, err
			}
			els = append(els, ce)
		}
		return &ast.ArrayLiteral{Start_: int(e.LeftBracket), End_: int(e.RightBracket) + 1, Elements: els}, nil

	case *gojaast.ArrayPattern:
		els := make([]ast.Expr, 0, len(e.Elements))
		for _, v := range e.Elements {
			ce, err := c.expr(v)
			if err != nil {
				return nil, err
			}
			els = append(els, ce)
		}
		if e.Rest != nil {
			rest, err := c.expr(e.Rest)
			if err != nil {
				return nil, err
			}
			els = append(els, &ast.RestElement{Arg: rest})
		}
		return &ast.ArrayPattern{Start_: int(e.LeftBracket), End_: int(e.RightBracket) + 1, Elements: els}, nil

	case *gojaast.ObjectLiteral:
		return c.objectLiteral(int(e.LeftBrace), int(e.RightBrace)+1, e.Value)

	case *gojaast.ObjectPattern:
		ol, err := c.objectLiteral(int(e.LeftBrace), int(e.RightBrace)+1, e.Properties)
		if err != nil {
			return nil, err
		}
		if e.Rest != nil {
			rest, err := c.expr(e.Rest)
			if err != nil {
				return nil, err
			}
			ol.Properties = append(ol.Properties, &ast.Property{
				Kind: ast.PropSpread, Value: &ast.RestElement{Arg: rest},
			})
		}
		return ol, nil

	case *gojaast.SpreadElement:
		arg, err := c.expr(e.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.SpreadElement{Arg: arg}, nil

	case *gojaast.FunctionLiteral:
		return c.funcLiteral(e)

	case *gojaast.ClassLiteral:
		return c.classLiteral(e)

	case *gojaast.CallExpression:
		callee, err := c.expr(e.Callee)
		if err != nil {
			return nil, err
		}
		args, err := c.exprs(e.ArgumentList)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Start_: callee.Span().Start, End_: int(e.RightParenthesis) + 1, Callee: callee, Args: args}, nil

	case *gojaast.NewExpression:
		callee, err := c.expr(e.Callee)
		if err != nil {
			return nil, err
		}
		args, err := c.exprs(e.ArgumentList)
		if err != nil {
			return nil, err
		}
		return &ast.NewExpr{Start_: int(e.New), End_: int(e.RightParenthesis) + 1, Callee: callee, Args: args}, nil

	case *gojaast.DotExpression:
		left, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpr{Object: left, Property: c.ident(&e.Identifier), Computed: false}, nil

	case *gojaast.PrivateDotExpression:
		left, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpr{Object: left, Property: c.ident(&e.Identifier), Computed: false}, nil

	case *gojaast.BracketExpression:
		left, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		member, err := c.expr(e.Member)
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpr{Object: left, Property: member, Computed: true}, nil

	case *gojaast.BinaryExpression:
		left, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.expr(e.Right)
		if err != nil {
			return nil, err
		}
		if e.Operator == token.LOGICAL_AND || e.Operator == token.LOGICAL_OR {
			return &ast.LogicalExpr{Op: e.Operator.String(), Left: left, Right: right}, nil
		}
		return &ast.BinaryExpr{Op: e.Operator.String(), Left: left, Right: right}, nil

	case *gojaast.AssignExpression:
		left, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.expr(e.Right)
		if err != nil {
			return nil, err
		}
		op := ""
		if e.Operator != token.ASSIGN {
			op = e.Operator.String()
		}
		return &ast.AssignExpr{Op: op, Left: left, Right: right}, nil

	case *gojaast.UnaryExpression:
		operand, err := c.expr(e.Operand)
		if err != nil {
			return nil, err
		}
		if e.Postfix {
			return &ast.UpdateExpr{Start_: operand.Span().Start, End_: int(e.Idx) + 2, Op: e.Operator.String(), Arg: operand, Prefix: false}, nil
		}
		if e.Operator == token.INCREMENT || e.Operator == token.DECREMENT {
			return &ast.UpdateExpr{Start_: int(e.Idx), End_: operand.Span().End, Op: e.Operator.String(), Arg: operand, Prefix: true}, nil
		}
		return &ast.UnaryExpr{Start_: int(e.Idx), Op: e.Operator.String(), Arg: operand}, nil

	case *gojaast.ConditionalExpression:
		test, err := c.expr(e.Test)
		if err != nil {
			return nil, err
		}
		cons, err := c.expr(e.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := c.expr(e.Alternate)
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpr{Test: test, Cons: cons, Alt: alt}, nil

	case *gojaast.SequenceExpression:
		es, err := c.exprs(e.Sequence)
		if err != nil {
			return nil, err
		}
		return &ast.SequenceExpr{Exprs: es}, nil

	case *gojaast.AwaitExpression:
		arg, err := c.expr(e.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.AwaitExpr{Start_: int(e.Await), Arg: arg}, nil

	case *gojaast.YieldExpression:
		var arg ast.Expr
		var err error
		if e.Argument != nil {
			arg, err = c.expr(e.Argument)
			if err != nil {
				return nil, err
			}
		}
		return &ast.YieldExpr{Start_: int(e.Yield), Arg: arg, Delegate: e.Delegate}, nil

	case *gojaast.AssignPattern:
		left, err := c.expr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.expr(e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.AssignPattern{Left: left, Right: right}, nil

	case *gojaast.MetaProperty:
		return &ast.Ident{Start_: int(e.Idx), Name: "new.target"}, nil

	default:
		return nil, c.unsupported("expression", 0)
	}
}

func (c *converter) exprs(in []gojaast.Expression) ([]ast.Expr, error) {
	out := make([]ast.Expr, 0, len(in))
	for _, e := range in {
		ce, err := c.expr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, ce)
	}
	return out, nil
}

func (c *converter) templateLiteral(e *gojaast.TemplateLiteral) (ast.Expr, error) {
	quasis := make([]string, 0, len(e.Elements))
	for _, el := range e.Elements {
		quasis = append(quasis, el.Literal)
	}
	exprs, err := c.exprs(e.Expressions)
	if err != nil {
		return nil, err
	}
	lit := &ast.TemplateLiteral{Start_: int(e.Openquote), End_: int(e.Closequote) + 1, Quasis: quasis, Expressions: exprs}
	if e.Tag != nil {
		tag, err := c.expr(e.Tag)
		if err != nil {
			return nil, err
		}
		return &ast.TaggedTemplateExpr{Tag: tag, Template: lit}, nil
	}
	return lit, nil
}

func (c *converter) objectLiteral(start, end int, props []gojaast.Property) (*ast.ObjectLiteral, error) {
	out := &ast.ObjectLiteral{Start_: start, End_: end}
	for _, p := range props {
		prop, err := c.property(p)
		if err != nil {
			return nil, err
		}
		out.Properties = append(out.Properties, prop)
	}
	return out, nil
}

func (c *converter) property(p gojaast.Property) (*ast.Property, error) {
	switch p := p.(type) {
	case *gojaast.PropertyShort:
		key := c.ident(&p.Name)
		value := c.ident(&p.Name)
		var def ast.Expr
		if p.Initializer != nil {
			var err error
			def, err = c.expr(p.Initializer)
			if err != nil {
				return nil, err
			}
		}
		return &ast.Property{Key: key, Value: value, Kind: ast.PropInit, Shorthand: true, Default: def}, nil

	case *gojaast.PropertyKeyed:
		key, err := c.propKey(p.Key, p.Computed)
		if err != nil {
			return nil, err
		}
		value, err := c.expr(p.Value)
		if err != nil {
			return nil, err
		}
		kind := ast.PropInit
		switch p.Kind {
		case gojaast.PropertyKindGet:
			kind = ast.PropGet
		case gojaast.PropertyKindSet:
			kind = ast.PropSet
		case gojaast.PropertyKindMethod:
			kind = ast.PropMethod
		}
		return &ast.Property{Key: key, Value: value, Kind: kind, Computed: p.Computed}, nil

	case *gojaast.SpreadElement:
		arg, err := c.expr(p.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.Property{Kind: ast.PropSpread, Value: &ast.SpreadElement{Arg: arg}}, nil

	default:
		return nil, c.unsupported("object property", 0)
	}
}

// propKey converts a property key. Non-computed identifier keys are built
// as a fresh *ast.Ident node, never aliased with any binding's identifier,
// so that resolving/renaming a variable never touches a property key.
func (c *converter) propKey(k gojaast.Expression, computed bool) (ast.Expr, error) {
	if !computed {
		if id, ok := k.(*gojaast.Identifier); ok {
			return c.ident(id), nil
		}
	}
	return c.expr(k)
}

func (c *converter) funcLiteral(f *gojaast.FunctionLiteral) (*ast.FuncLiteral, error) {
	sig, err := c.paramList(f.ParameterList)
	if err != nil {
		return nil, err
	}
	out := &ast.FuncLiteral{
		Start_:      int(f.Function),
		Name:        c.ident(f.Name),
		Sig:         sig,
		IsAsync:     f.Async,
		IsGenerator: f.Generator,
	}
	if body, ok := f.Body.(*gojaast.BlockStatement); ok {
		b, err := c.block(body)
		if err != nil {
			return nil, err
		}
		out.Body = b
		out.End_ = b.Span().End
	} else if f.Body != nil {
		e, err := c.expr(f.Body.(gojaast.Expression))
		if err != nil {
			return nil, err
		}
		out.ExprBody = e
		out.End_ = e.Span().End
	}
	return out, nil
}

func (c *converter) paramList(pl *gojaast.ParameterList) (*ast.FuncSignature, error) {
	sig := &ast.FuncSignature{}
	if pl == nil {
		return sig, nil
	}
	for _, b := range pl.List {
		p, err := c.bindingTarget(b.Target)
		if err != nil {
			return nil, err
		}
		if b.Initializer != nil {
			init, err := c.expr(b.Initializer)
			if err != nil {
				return nil, err
			}
			p = &ast.AssignPattern{Left: p, Right: init}
		}
		sig.Params = append(sig.Params, p)
	}
	if pl.Rest != nil {
		rest, err := c.expr(pl.Rest)
		if err != nil {
			return nil, err
		}
		sig.Params = append(sig.Params, &ast.RestElement{Arg: rest})
		sig.HasRest = true
	}
	return sig, nil
}

func (c *converter) classLiteral(cl *gojaast.ClassLiteral) (*ast.ClassLiteral, error) {
	out := &ast.ClassLiteral{
		Start_: int(cl.Class),
		End_:   int(cl.RightBrace) + 1,
		Name:   c.ident(cl.Name),
	}
	if cl.SuperClass != nil {
		sc, err := c.expr(cl.SuperClass)
		if err != nil {
			return nil, err
		}
		out.SuperClass = sc
	}
	for _, el := range cl.Body {
		m, err := c.classElement(el)
		if err != nil {
			return nil, err
		}
		if m != nil {
			out.Members = append(out.Members, m)
		}
	}
	return out, nil
}

func (c *converter) classElement(el gojaast.ClassElement) (*ast.ClassMember, error) {
	switch el := el.(type) {
	case *gojaast.MethodDefinition:
		key, err := c.propKey(el.Key, el.Computed)
		if err != nil {
			return nil, err
		}
		fn, err := c.funcLiteral(el.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ClassMember{
			Start_: int(el.Idx), End_: fn.Span().End, Kind: ast.ClassMethod,
			Key: key, Computed: el.Computed, Static: el.Static, Method: fn,
		}, nil

	case *gojaast.FieldDefinition:
		key, err := c.propKey(el.Key, el.Computed)
		if err != nil {
			return nil, err
		}
		var val ast.Expr
		if el.Initializer != nil {
			val, err = c.expr(el.Initializer)
			if err != nil {
				return nil, err
			}
		}
		end := key.Span().End
		if val != nil {
			end = val.Span().End
		}
		return &ast.ClassMember{
			Start_: int(el.Idx), End_: end, Kind: ast.ClassField,
			Key: key, Computed: el.Computed, Static: el.Static, FieldValue: val,
		}, nil

	default:
		// class static blocks and other rare members are not renamed and
		// carry no bindings this module tracks; skip rather than fail.
		return nil, nil
	}
}
