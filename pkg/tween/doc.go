// Package tween provides time-based interpolation driven by an external
// frame loop.
//
// A [Tween] maps elapsed time to eased progress in [0, 1] and hands that
// progress to an update function. Tweens never run on their own: the owner
// calls [Group.Update] once per frame with the current time, and every
// registered tween advances. Completed tweens drop out of the group.
//
// A [Group] is an explicit registry of in-flight tweens keyed by the id of
// the object they animate. Owning a group instead of sharing a package-level
// one keeps cancellation local: [Group.Clear] discards every pending tween of
// one owner and nothing else.
package tween
