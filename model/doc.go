/*
Copyright 2020, Square, Inc.

Package model is the in-memory representation of a hierarchical process
network: leaf processes that compute, composite processes that contain other
processes, and the ports that connect them.

Storage

A Network owns every process and every port in two arenas (slices). Callers
hold ProcessRef and PortRef values, which are an arena index plus a
generation counter. A ref to a deleted process or port is detected by its
generation and reported as a LookupMiss; it can never reach a reused slot.

Deleting a process disconnects and frees its ports and, for a composite,
every contained process. Nothing points back into a freed slot because
connections are not stored on the ports.

Connections

Every connection is a pair of Terminals stored in both directions in the
network's connection table, so A -> B and B -> A always exist together. A
Terminal is a port plus a slot:

	* SlotPort - the only slot of a leaf port
	* SlotOutside - a composite IOPort's slot facing the composite's own level
	* SlotInside - a composite IOPort's slot facing a directly contained process

Which slot may connect to which port is decided by hierarchy.FindRelation on
the two owning processes:

	* leaf port or outside slot: Sibling (far end is a leaf port or an outside
	  slot) or FirstParent (far end is the parent composite's inside slot)
	* inside slot: FirstChild (far end is a leaf port or an outside slot)

Any other relation is a StructuralError and nothing is changed.

Leaf resolution

ConnectedLeafPort follows a chain of IOPorts until it reaches a leaf port.
Crossing an IOPort always continues on the slot opposite to the one it was
entered through, which is what the relation between the two owners says
too: entered from a Sibling continues inside, entered from a FirstChild
continues outside, entered from the FirstParent continues inside.
*/
package model
