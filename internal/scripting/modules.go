package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
)

// registerModules registers the engine.log and engine.dice Lua tables into
// L. engine.dice draws from v's per-call roller.
//
// Precondition: L must be from NewSandboxedState and owned by v.
// Postcondition: engine global is defined in L.
func (m *Manager) registerModules(L *lua.LState, v *vm) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.newLogModule(L))
	L.SetField(engine, "dice", m.newDiceModule(L, v))
	L.SetGlobal("engine", engine)
}

func (m *Manager) newLogModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	logAt := func(fn func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	L.SetField(mod, "debug", L.NewFunction(logAt(m.logger.Debug)))
	L.SetField(mod, "info", L.NewFunction(logAt(m.logger.Info)))
	L.SetField(mod, "warn", L.NewFunction(logAt(m.logger.Warn)))
	return mod
}

func (m *Manager) newDiceModule(L *lua.LState, v *vm) *lua.LTable {
	// Modules run only inside call, with v.mu held.
	roller := func() *dice.Roller {
		if v.roller != nil {
			return v.roller
		}
		return m.roller
	}
	mod := L.NewTable()
	L.SetField(mod, "one_in", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(roller().OneIn(L.CheckInt(1))))
		return 1
	}))
	L.SetField(mod, "randint1", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(roller().RandInt1(L.CheckInt(1))))
		return 1
	}))
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		d, err := dice.Parse(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		L.Push(lua.LNumber(roller().Roll(d)))
		return 1
	}))
	return mod
}
