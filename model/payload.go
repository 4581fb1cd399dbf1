package model

// Payload is a finished audio file ready for delivery. Path is only valid
// inside the scope that produced it.
type Payload struct {
	Path      string
	Filename  string
	Performer string
	Title     string
	Duration  int
	Size      int64
}

func (p *Payload) Caption() string {
	return p.Performer + " - " + p.Title
}
