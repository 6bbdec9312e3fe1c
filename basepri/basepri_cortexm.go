//go:build cortexm && !armv6m

package basepri

//sigo:extern getBasepri _basepri_get
func getBasepri() uint32

//sigo:extern setBasepri _basepri_set
func setBasepri(value uint32)

//sigo:extern setBasepriMax _basepri_set_max
func setBasepriMax(value uint32)

// Hardware is the BASEPRI register of the executing ARMv7-M core.
type Hardware struct{}

func (Hardware) Get() uint32 {
	return getBasepri()
}

func (Hardware) Set(value uint32) {
	setBasepri(value)
}

func (Hardware) SetMax(value uint32) {
	setBasepriMax(value)
}
