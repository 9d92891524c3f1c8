// Package ui contains the Bubble Tea program of the main window: the call
// player, the attachment strip and the settings screen.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so it is handled by a focused
//     function (key presses, store changes, bridge events, sub-model results).
//   - Key presses go to the focused sub-model: the media player or the
//     attachment strip on the call screen, the settings screen otherwise.
//   - Model implements the router the sub-models navigate through; a route
//     selects the screen.
//
// State ownership:
//   - Call and window state live in internal/state.Store. The model holds a
//     subscription and waits on it with waitForStoreChange; every tick leads
//     to a re-render, which reads a fresh snapshot.
//   - Silent dispatches (the pop-out hand-off) do not tick the subscription;
//     the dispatching player reads its own write in the same Update.
//
// Bridge interactions:
//   - Pop-out surfaces report close, disconnect and fullscreen over the
//     bridge. waitForBridgeEvent hands them to the model, which clears a
//     closed surface from the store and mirrors the mute flag back out.
//   - Sub-model commands run through the internal/ui/command bus so each
//     one is traced.
package ui
