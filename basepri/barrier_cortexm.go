//go:build cortexm

package basepri

//sigo:extern compilerFence _basepri_fence
func compilerFence()

//sigo:extern dataSync _basepri_dsb
func dataSync()

//sigo:extern instructionSync _basepri_isb
func instructionSync()
