package input

// Browser key codes (KeyboardEvent.keyCode).
const (
	KeySpace      = 32
	KeyArrowLeft  = 37
	KeyArrowUp    = 38
	KeyArrowRight = 39
	KeyA          = 65
	KeyD          = 68
	KeyP          = 80
	KeyW          = 87
)

var keyCodeActions = map[int]Action{
	KeySpace:      Fire,
	KeyW:          Fire,
	KeyArrowUp:    Fire,
	KeyA:          MoveLeft,
	KeyArrowLeft:  MoveLeft,
	KeyD:          MoveRight,
	KeyArrowRight: MoveRight,
	KeyP:          Pause,
}

// FromKeyCode maps a browser key code to its action.
func FromKeyCode(code int) (Action, bool) {
	a, ok := keyCodeActions[code]
	return a, ok
}

// SuppressedKeyCodes returns the key codes whose default browser behavior
// (scrolling, page down on space) the page should cancel.
func SuppressedKeyCodes() []int {
	return []int{KeyArrowLeft, KeyArrowRight, KeySpace, KeyA, KeyD, KeyW, KeyArrowUp}
}
