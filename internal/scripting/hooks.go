package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// itemTable returns a read-only snapshot of item for a hook.
func itemTable(L *lua.LState, item *inventory.Item) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("base_id", lua.LString(item.BaseID))
	t.RawSetString("name", lua.LString(item.Name))
	t.RawSetString("category", lua.LString(item.Category))
	t.RawSetString("sval", lua.LString(item.Sval))
	t.RawSetString("to_hit", lua.LNumber(item.ToHit))
	t.RawSetString("to_dam", lua.LNumber(item.ToDam))
	t.RawSetString("to_ac", lua.LNumber(item.ToAC))
	t.RawSetString("pval", lua.LNumber(item.Pval))
	t.RawSetString("ego", lua.LString(item.EgoID))
	t.RawSetString("artifact", lua.LString(item.ArtifactID))
	t.RawSetString("random_artifact", lua.LBool(item.RandomArtifact))
	t.RawSetString("cursed", lua.LBool(item.IsCursed()))
	t.RawSetString("broken", lua.LBool(item.Broken))
	t.RawSetString("bias", lua.LString(item.Bias.String()))
	traits := L.NewTable()
	for _, name := range item.AllTraits().Names() {
		traits.Append(lua.LString(name))
	}
	t.RawSetString("traits", traits)
	return t
}

// applyOverrides applies a hook result. Recognised keys: to_hit, to_dam,
// to_ac and pval (numbers replacing the current value), traits (names to
// add), curses (curse names to set) and broken (bool).
//
// Postcondition: on error item is unchanged.
func applyOverrides(item *inventory.Item, tbl *lua.LTable) error {
	next := *item
	var errs []error

	ints := map[string]*int{"to_hit": &next.ToHit, "to_dam": &next.ToDam, "to_ac": &next.ToAC, "pval": &next.Pval}
	for key, dst := range ints {
		switch v := tbl.RawGetString(key).(type) {
		case lua.LNumber:
			*dst = int(v)
		case *lua.LNilType:
		default:
			errs = append(errs, fmt.Errorf("%s must be a number, got %s", key, v.Type()))
		}
	}

	if v, ok := tbl.RawGetString("traits").(*lua.LTable); ok {
		v.ForEach(func(_, val lua.LValue) {
			t, err := trait.Parse(val.String())
			if err != nil {
				errs = append(errs, err)
				return
			}
			next.Traits.Add(t)
		})
	}
	if v, ok := tbl.RawGetString("curses").(*lua.LTable); ok {
		v.ForEach(func(_, val lua.LValue) {
			c, err := trait.ParseCurse(val.String())
			if err != nil {
				errs = append(errs, err)
				return
			}
			next.Curses.Set(c)
		})
	}
	if v, ok := tbl.RawGetString("broken").(lua.LBool); ok {
		next.Broken = bool(v)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid hook result: %v", errs)
	}
	*item = next
	return nil
}
