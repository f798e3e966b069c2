// Package roadnet constructs road-network LMDP models from a YAML map
// of nodes, edges, and landmarks.
//
// A state is one directed road segment together with the driver's
// tiredness level: traversing segment u→v while Fresh is a different
// state from traversing it while Tired. An action picks the next
// outgoing segment at the head intersection and the driving mode —
// manual or autonomy. Autonomy is only admissible on segments flagged
// autonomy-capable; the admissible-action mask keeps inadmissible
// mode/segment pairs out of the model entirely.
//
// Tiredness drifts: manual driving moves a Fresh driver to Tired with
// the drift probability; autonomy holds the level. Segments on the
// goal street absorb (self-loop with zero rewards); entering one pays
// the goal bonus.
//
// Two reward factors:
//
//	0 — time:    −distance/speed per segment entered, scaled up by the
//	    autonomy factor when driving autonomously, +1 on reaching the
//	    goal street.
//	1 — comfort: −1 for driving manually while tired, plus a scenic
//	    bonus for segments passing near a landmark.
//
// The preference partition splits by tiredness: Fresh states order
// (time, comfort), Tired states order (comfort, time) — a tired
// driver hands over to autonomy wherever the road allows it, even
// when marginally slower.
//
// Complexity: O(E·D) build time for E directed segments with maximum
// intersection degree D.
package roadnet
