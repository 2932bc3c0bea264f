package guide

// Element describes one BPMN 2.0 notation element for the reference guide
type Element struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Elements is the BPMN 2.0 notation reference served by the guide surfaces
var Elements = []Element{
	{"Start Event", "Events", "Marks where a process begins. Drawn as a thin circle; a process needs at least one."},
	{"End Event", "Events", "Marks where a process path terminates. Drawn as a thick circle."},
	{"Intermediate Event", "Events", "Something that happens between start and end, such as a timer firing or a message arriving."},
	{"Message Event", "Events", "An event triggered by sending or receiving a message between participants."},
	{"Timer Event", "Events", "An event triggered by a point in time or a duration elapsing."},
	{"Task", "Activities", "A single unit of work performed in the process, named verb-first (e.g. 'Approve request')."},
	{"User Task", "Activities", "A task performed by a person, typically through a form or application."},
	{"Service Task", "Activities", "A task performed automatically by a system or service."},
	{"Sub-Process", "Activities", "A compound activity containing its own flow, collapsible in the diagram."},
	{"Exclusive Gateway", "Gateways", "Routes the flow down exactly one of several outgoing paths based on conditions (XOR)."},
	{"Parallel Gateway", "Gateways", "Splits the flow into concurrent paths, or joins them back, waiting for all (AND)."},
	{"Inclusive Gateway", "Gateways", "Routes down one or more paths whose conditions hold (OR)."},
	{"Event-Based Gateway", "Gateways", "Routes based on which of several events occurs first."},
	{"Sequence Flow", "Connections", "A solid arrow showing the order in which activities are performed."},
	{"Message Flow", "Connections", "A dashed arrow showing a message passing between separate participants."},
	{"Association", "Connections", "A dotted line linking artifacts such as annotations to flow elements."},
	{"Pool", "Swimlanes", "Represents a participant (organization or system) in a collaboration."},
	{"Lane", "Swimlanes", "A subdivision of a pool assigning activities to a role or department."},
	{"Data Object", "Artifacts", "Information consumed or produced by activities."},
	{"Text Annotation", "Artifacts", "A free-text note attached to an element for the reader's benefit."},
}

// Overview is a short introduction shown above the element reference
const Overview = `BPMN 2.0 (Business Process Model and Notation) is the OMG standard
for describing business workflows as diagrams backed by XML. A process is built
from events (things that happen), activities (work that is done), gateways
(decisions and synchronization), and the flows connecting them, organized into
pools and lanes when several participants are involved.

Generated diagrams in this tool always carry both the semantic elements and a
BPMNDiagram section with layout coordinates, so any BPMN-conformant viewer can
render them directly.`
