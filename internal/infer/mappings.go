package infer

// Mappings is the infer stage's side table from a resolver-assigned
// symbol id to the TypeID it was registered under — the Go rendering
// of infer/mappings.rs's Mappings, keyed directly by int id rather
// than by Ident, since the resolver has already collapsed every
// binding to a globally-unique id. Unlike the resolver's own mappings,
// this is never cloned: one instance flows by pointer through the
// whole walk, because id uniqueness has already eliminated any
// shadowing-collision risk at this stage.
type Mappings struct {
	// varTys holds both variables' and functions' own declared-symbol
	// ids, matching the original's HoistedScope::to_info, which inserts
	// a function's own id into var_tys (not named_tys) right alongside
	// ordinary variables.
	varTys map[int]TypeID

	// namedTys holds generic/type bindings, looked up when a Type::User
	// in type position names a generic parameter.
	namedTys map[int]TypeID
}

func NewMappings() *Mappings {
	return &Mappings{varTys: make(map[int]TypeID), namedTys: make(map[int]TypeID)}
}

func (m *Mappings) insertVarTy(id int, ty TypeID)   { m.varTys[id] = ty }
func (m *Mappings) insertNamedTy(id int, ty TypeID) { m.namedTys[id] = ty }

func (m *Mappings) getVarTy(id int) (TypeID, bool) {
	ty, ok := m.varTys[id]
	return ty, ok
}

func (m *Mappings) getNamedTy(id int) (TypeID, bool) {
	ty, ok := m.namedTys[id]
	return ty, ok
}
