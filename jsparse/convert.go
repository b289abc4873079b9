package jsparse

import (
	gojaast "github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"

	"github.com/mna/jsrename/ast"
)

func (c *converter) stmt(s gojaast.Statement) (ast.Stmt, error) {
	switch s := s.(type) {
	case nil:
		return nil, nil

	case *gojaast.BlockStatement:
		return c.block(s)

	case *gojaast.VariableStatement:
		return c.varDecl(int(s.Var), token.VAR, s.List)

	case *gojaast.LexicalDeclaration:
		return c.varDecl(int(s.Idx), s.Token, s.List)

	case *gojaast.FunctionDeclaration:
		fn, err := c.funcLiteral(s.Function)
		if err != nil {
			return nil, err
		}
		return &ast.FuncDeclStmt{Fn: fn}, nil

	case *gojaast.ClassDeclaration:
		cl, err := c.classLiteral(s.Class)
		if err != nil {
			return nil, err
		}
		return &ast.ClassDeclStmt{Class: cl}, nil

	case *gojaast.ExpressionStatement:
		e, err := c.expr(s.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e}, nil

	case *gojaast.IfStatement:
		test, err := c.expr(s.Test)
		if err != nil {
			return nil, err
		}
		cons, err := c.stmt(s.Consequent)
		if err != nil {
			return nil, err
		}
		var alt ast.Stmt
		if s.Alternate != nil {
			alt, err = c.stmt(s.Alternate)
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStmt{Start_: int(s.If), Test: test, Cons: cons, Alt: alt}, nil

	case *gojaast.ForStatement:
		return c.forStmt(s)

	case *gojaast.ForInStatement:
		return c.forInOf(int(s.For), s.Into, s.Source, s.Body, false)

	case *gojaast.ForOfStatement:
		return c.forInOf(int(s.For), s.Into, s.Source, s.Body, true)

	case *gojaast.WhileStatement:
		test, err := c.expr(s.Test)
		if err != nil {
			return nil, err
		}
		body, err := c.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Start_: int(s.While), Test: test, Body: body}, nil

	case *gojaast.DoWhileStatement:
		test, err := c.expr(s.Test)
		if err != nil {
			return nil, err
		}
		body, err := c.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStmt{Start_: int(s.Do), End_: int(s.Do), Body: body, Test: test}, nil

	case *gojaast.ReturnStatement:
		var arg ast.Expr
		var err error
		if s.Argument != nil {
			arg, err = c.expr(s.Argument)
			if err != nil {
				return nil, err
			}
		}
		return &ast.ReturnStmt{Start_: int(s.Return), End_: int(s.Return) + 6, Arg: arg}, nil

	case *gojaast.ThrowStatement:
		arg, err := c.expr(s.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.ThrowStmt{Start_: int(s.Throw), End_: arg.Span().End, Arg: arg}, nil

	case *gojaast.BranchStatement:
		var lbl *ast.Ident
		if s.Label != nil {
			lbl = c.ident(s.Label)
		}
		if s.Token == token.BREAK {
			return &ast.BreakStmt{Start_: int(s.Idx), End_: int(s.Idx) + 5, Label: lbl}, nil
		}
		return &ast.ContinueStmt{Start_: int(s.Idx), End_: int(s.Idx) + 8, Label: lbl}, nil

	case *gojaast.LabelledStatement:
		body, err := c.stmt(s.Statement)
		if err != nil {
			return nil, err
		}
		return &ast.LabeledStmt{Label: c.ident(s.Label), Body: body}, nil

	case *gojaast.TryStatement:
		return c.tryStmt(s)

	case *gojaast.SwitchStatement:
		return c.switchStmt(s)

	case *gojaast.WithStatement:
		obj, err := c.expr(s.Object)
		if err != nil {
			return nil, err
		}
		body, err := c.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WithStmt{Start_: int(s.With), Obj: obj, Body: body}, nil

	case *gojaast.EmptyStatement:
		return &ast.EmptyStmt{Start_: int(s.Idx), End_: int(s.Idx) + 1}, nil

	case *gojaast.DebuggerStatement:
		return &ast.EmptyStmt{Start_: int(s.Idx), End_: int(s.Idx)}, nil

	case *gojaast.ImportDeclaration:
		return c.importDecl(s)

	case *gojaast.ExportDeclaration:
		return c.exportDecl(s)

	default:
		return nil, c.unsupported("statement", 0)
	}
}

func (c *converter) varDecl(start int, tok token.Token, list []*gojaast.Binding) (*ast.VarDeclStmt, error) {
	kind := ast.DeclVar
	switch tok {
	case token.LET:
		kind = ast.DeclLet
	case token.CONST:
		kind = ast.DeclConst
	}

	end := start
	decls := make([]*ast.Declarator, 0, len(list))
	for _, b := range list {
		id, err := c.bindingTarget(b.Target)
		if err != nil {
			return nil, err
		}
		var init ast.Expr
		if b.Initializer != nil {
			init, err = c.expr(b.Initializer)
			if err != nil {
				return nil, err
			}
			end = init.Span().End
		} else {
			end = id.Span().End
		}
		decls = append(decls, &ast.Declarator{ID: id, Init: init})
	}
	return &ast.VarDeclStmt{Start_: start, End_: end, Kind: kind, Decls: decls}, nil
}

// bindingTarget converts a goja binding target (identifier or destructuring
// pattern) into the corresponding ast.Expr used throughout this module for
// pattern positions.
func (c *converter) bindingTarget(t gojaast.BindingTarget) (ast.Expr, error) {
	return c.expr(t.(gojaast.Expression))
}

func (c *converter) forStmt(s *gojaast.ForStatement) (ast.Stmt, error) {
	var (
		init ast.Node
		err  error
	)
	switch i := s.Initializer.(type) {
	case nil:
	case *gojaast.ForLoopInitializerExpression:
		init, err = c.expr(i.Expression)
	case *gojaast.ForLoopInitializerVarDeclList:
		init, err = c.varDecl(int(s.For), token.VAR, i.List)
	case *gojaast.ForLoopInitializerLexicalDecl:
		init, err = c.varDecl(int(i.LexicalDeclaration.Idx), i.LexicalDeclaration.Token, i.LexicalDeclaration.List)
	default:
		return nil, c.unsupported("for-initializer", s.For)
	}
	if err != nil {
		return nil, err
	}

	var test, update ast.Expr
	if s.Test != nil {
		if test, err = c.expr(s.Test); err != nil {
			return nil, err
		}
	}
	if s.Update != nil {
		if update, err = c.expr(s.Update); err != nil {
			return nil, err
		}
	}
	body, err := c.stmt(s.Body)
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Start_: int(s.For), Init: init, Test: test, Update: update, Body: body}, nil
}

func (c *converter) forInOf(start int, into gojaast.ForInto, source gojaast.Expression, body gojaast.Statement, isOf bool) (ast.Stmt, error) {
	var (
		left    ast.Expr
		hasDecl bool
		kind    ast.DeclKind
		err     error
	)
	switch i := into.(type) {
	case *gojaast.ForIntoExpression:
		left, err = c.expr(i.Expression)
	case *gojaast.ForIntoVar:
		hasDecl = true
		left, err = c.bindingTarget(i.Binding.Target)
	case *gojaast.ForIntoIdentifier:
		hasDecl = true
		kind = ast.DeclLet
		left = c.ident(i.Identifier)
	default:
		return nil, c.unsupported("for-in/of target", start)
	}
	if err != nil {
		return nil, err
	}

	src, err := c.expr(source)
	if err != nil {
		return nil, err
	}
	b, err := c.stmt(body)
	if err != nil {
		return nil, err
	}
	return &ast.ForInStmt{
		Start_: start, Left: left, HasDecl: hasDecl, Kind: kind, Right: src, Body: b, Of: isOf,
	}, nil
}

func (c *converter) tryStmt(s *gojaast.TryStatement) (ast.Stmt, error) {
	body, err := c.block(s.Body)
	if err != nil {
		return nil, err
	}
	var handler *ast.CatchClause
	if s.Catch != nil {
		var param ast.Expr
		if s.Catch.Parameter != nil {
			param, err = c.bindingTarget(s.Catch.Parameter)
			if err != nil {
				return nil, err
			}
		}
		hb, err := c.block(s.Catch.Body)
		if err != nil {
			return nil, err
		}
		handler = &ast.CatchClause{Param: param, Body: hb}
	}
	var fin *ast.BlockStmt
	if s.Finally != nil {
		if fin, err = c.block(s.Finally); err != nil {
			return nil, err
		}
	}
	return &ast.TryStmt{Start_: int(s.Try), End_: body.Span().End, Block: body, Handler: handler, Finalizer: fin}, nil
}

func (c *converter) switchStmt(s *gojaast.SwitchStatement) (ast.Stmt, error) {
	disc, err := c.expr(s.Discriminant)
	if err != nil {
		return nil, err
	}
	cases := make([]*ast.SwitchCase, 0, len(s.Body))
	for _, cs := range s.Body {
		var test ast.Expr
		if cs.Test != nil {
			if test, err = c.expr(cs.Test); err != nil {
				return nil, err
			}
		}
		conseq, err := c.stmts(cs.Consequent)
		if err != nil {
			return nil, err
		}
		cases = append(cases, &ast.SwitchCase{Test: test, Consequent: conseq})
	}
	return &ast.SwitchStmt{Start_: int(s.Switch), End_: int(s.Switch), Disc: disc, Cases: cases}, nil
}

func (c *converter) importDecl(s *gojaast.ImportDeclaration) (ast.Stmt, error) {
	out := &ast.ImportDeclStmt{Start_: int(s.Idx)}
	if s.FromClause != nil {
		out.Source = string(s.FromClause.ModuleSpecifier)
	}
	if s.ImportClause != nil {
		if s.ImportClause.ImportedDefaultBinding != nil {
			out.Specifiers = append(out.Specifiers, &ast.ImportSpecifier{
				Kind: ast.ImportDefault, Local: c.ident(s.ImportClause.ImportedDefaultBinding),
			})
		}
		if s.ImportClause.NameSpaceImport != nil {
			out.Specifiers = append(out.Specifiers, &ast.ImportSpecifier{
				Kind: ast.ImportNamespace, Local: c.ident(s.ImportClause.NameSpaceImport.ImportedBinding),
			})
		}
		if s.ImportClause.NamedImports != nil {
			for _, spec := range s.ImportClause.NamedImports.ImportsList {
				out.Specifiers = append(out.Specifiers, &ast.ImportSpecifier{
					Kind:     ast.ImportNamed,
					Local:    c.ident(spec.ImportedBinding),
					Imported: c.ident(spec.IdentifierName),
				})
			}
		}
	}
	return out, nil
}

func (c *converter) exportDecl(s *gojaast.ExportDeclaration) (ast.Stmt, error) {
	if s.ExportFromClause != nil && s.ExportFromClause.NamedExports == nil {
		// export * [as name] from "source"
		var exported *ast.Ident
		return &ast.ExportAllStmt{
			Start_: int(s.Idx), Exported: exported,
			Source: string(s.FromClause.ModuleSpecifier),
		}, nil
	}

	if s.Declaration != nil {
		decl, err := c.stmt(s.Declaration)
		if err != nil {
			return nil, err
		}
		return &ast.ExportNamedStmt{Start_: int(s.Idx), End_: decl.Span().End, Decl: decl}, nil
	}

	if s.Default != nil {
		d, err := c.defaultExportable(s.Default)
		if err != nil {
			return nil, err
		}
		return &ast.ExportDefaultStmt{Start_: int(s.Idx), Decl: d}, nil
	}

	out := &ast.ExportNamedStmt{Start_: int(s.Idx)}
	if s.ExportFromClause != nil && s.ExportFromClause.NamedExports != nil {
		for _, spec := range s.ExportFromClause.NamedExports.ExportsList {
			out.Specifiers = append(out.Specifiers, &ast.ExportSpecifier{
				Local:    c.ident(spec.IdentifierName),
				Exported: c.ident(spec.ExportedName),
			})
		}
	}
	if s.FromClause != nil {
		src := string(s.FromClause.ModuleSpecifier)
		out.Source = &src
	}
	return out, nil
}

func (c *converter) defaultExportable(n gojaast.Node) (ast.Node, error) {
	switch d := n.(type) {
	case *gojaast.FunctionLiteral:
		fn, err := c.funcLiteral(d)
		if err != nil {
			return nil, err
		}
		return &ast.FuncDeclStmt{Fn: fn}, nil
	case *gojaast.ClassLiteral:
		cl, err := c.classLiteral(d)
		if err != nil {
			return nil, err
		}
		return &ast.ClassDeclStmt{Class: cl}, nil
	case gojaast.Expression:
		return c.expr(d)
	default:
		return nil, c.unsupported("export default target", 0)
	}
}
