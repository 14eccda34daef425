package ecosystem

// organism is a minimal forager: it wanders, harvests tile energy through
// the field engine, pays upkeep and starves at zero. It carries exactly the
// accessor surface field.Harvester asks for.
type organism struct {
	row, col int

	energy    float64
	maxEnergy float64

	forageRate float64
	capMin     float64
	capMax     float64
}

func (o *organism) ForageRate() float64    { return o.forageRate }
func (o *organism) HarvestCapMin() float64 { return o.capMin }
func (o *organism) HarvestCapMax() float64 { return o.capMax }
func (o *organism) Energy() float64        { return o.energy }
func (o *organism) MaxEnergy() float64     { return o.maxEnergy }
func (o *organism) AddEnergy(v float64)    { o.energy += v }

var cardinalSteps = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
