// Package unit provides the size values used for table rows and columns.
//
// A [Unit] is an opaque length: a number paired with a [Kind]. Absolute kinds
// (cm, mm, in, pt) have a fixed size; [KindNull] is a flexible unit that
// shares whatever space is left once absolute sizes are taken; [KindLines]
// and [KindNPC] depend on the drawing context. Units compose with [Sum],
// [Max] and [Min], which is how combined tables reconcile their sizes.
//
// The table model never inspects units beyond equality: it stores, filters
// and swaps them. Converting units to device sizes is left to renderers,
// which can use [Unit.Absolute] and [Unit.NullAmount] as building blocks.
//
// Units print and parse in a compact text form used by table definition
// files:
//
//	1null  2.5cm  10pt  sum(1cm,2mm)  max(1null,3lines)
package unit
