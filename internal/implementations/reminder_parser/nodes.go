package reminderparser

type nodeVisitor interface {
	visitClock(clock clock) error
	visitOn(on on) error
	visitIn(in in) error
}

type node interface {
	accept(v nodeVisitor) error
}

type clock struct {
	hour   uint
	minute uint
}

func (clock clock) accept(v nodeVisitor) error {
	return v.visitClock(clock)
}

type period string

var (
	invalid period = period("")
	second  period = period("s")
	minute  period = period("m")
	hour    period = period("h")
	day     period = period("d")
	week    period = period("w")
)

type onDay string

var (
	today     onDay = onDay("today")
	tomorrow  onDay = onDay("tomorrow")
	sunday    onDay = onDay("sunday")
	monday    onDay = onDay("monday")
	tuesday   onDay = onDay("tuesday")
	wednesday onDay = onDay("wednesday")
	thursday  onDay = onDay("thursday")
	friday    onDay = onDay("friday")
	saturday  onDay = onDay("saturday")
)

type on struct {
	day   onDay
	clock *clock
}

func (on on) accept(v nodeVisitor) error {
	return v.visitOn(on)
}

type in struct {
	p period
	n uint
}

func (in in) accept(v nodeVisitor) error {
	return v.visitIn(in)
}
