package scope

// inferStyles assigns every binding's DesiredStyle (§4.3), a deterministic
// function of binding kind and declaration shape alone — it never consults
// the binding's current name or any oracle suggestion.
func (a *analyzer) inferStyles() {
	rootID := a.tree.Root().ID
	for _, b := range a.tree.Bindings {
		b.DesiredStyle = inferStyle(b, rootID)
	}
}

func inferStyle(b *Binding, rootID ID) Style {
	switch {
	case b.Kind == BindClass:
		return StylePascal
	case b.declIsFuncLike && b.calledNew && !b.calledPlain:
		return StylePascal
	case b.DeclaringScope == rootID &&
		b.Kind == BindConst &&
		b.declIsPrimitive &&
		b.ExportStatus == ExportedByDeclaration:
		return StyleUpperSnake
	default:
		return StyleCamel
	}
}
