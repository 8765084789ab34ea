package sod_shock_tube

import (
	"math"
)

// Sod's problem on [0,1] with the diaphragm at x0 = 0.5
const (
	x_min, x_max  = 0., 1.
	x0            = 0.5 * (x_max + x_min)
	rho_l, P_l    = 1., 1.
	u_l           = 0.
	rho_r, P_r    = 0.125, 0.1
	u_r           = 0.
	gamma         = 1.4
)

var (
	mu  = math.Sqrt((gamma - 1) / (gamma + 1))
	mu2 = mu * mu
	c_l = math.Sqrt(gamma * P_l / rho_l)
)

type waves struct {
	P_post, v_post, rho_post, rho_middle float64
	x1, x2, x3, x4                       float64 // Rarefaction head, tail, contact, shock
}

func newWaves(t float64) (w waves) {
	w.P_post = fzero(sod_func, P_r, P_l)
	w.v_post = 2 * (math.Sqrt(gamma) / (gamma - 1)) * (1 - math.Pow(w.P_post, (gamma-1)/(2*gamma)))
	w.rho_post = rho_r * (((w.P_post / P_r) + mu2) / (1 + mu2*(w.P_post/P_r)))
	v_shock := w.v_post * (w.rho_post / rho_r) / ((w.rho_post / rho_r) - 1.)
	w.rho_middle = rho_l * math.Pow(w.P_post/P_l, 1./gamma)
	//Key Positions
	w.x1 = x0 - c_l*t
	w.x3 = x0 + w.v_post*t
	w.x4 = x0 + v_shock*t
	c_2 := c_l - 0.5*(gamma-1.)*w.v_post
	w.x2 = x0 + t*(w.v_post-c_2)
	return
}

/*
SodAt evaluates the exact solution at time t on the coordinates X, returning density, velocity, pressure and
specific internal energy. At t <= 0 it returns the initial discontinuity.
*/
func SodAt(t float64, X []float64) (Rho, U, P, E []float64) {
	var (
		w = newWaves(t)
	)
	Rho = make([]float64, len(X))
	U = make([]float64, len(X))
	P = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		switch {
		case t <= 0:
			if x < x0 {
				Rho[i], P[i], U[i] = rho_l, P_l, u_l
			} else {
				Rho[i], P[i], U[i] = rho_r, P_r, u_r
			}
		case x < w.x1:
			Rho[i], P[i], U[i] = rho_l, P_l, u_l
		case x <= w.x2:
			c := mu2*((x0-x)/t) + (1.-mu2)*c_l
			Rho[i] = rho_l * math.Pow(c/c_l, 2/(gamma-1))
			P[i] = P_l * math.Pow(Rho[i]/rho_l, gamma)
			U[i] = (1. - mu2) * ((-(x0 - x) / t) + c_l)
		case x <= w.x3:
			Rho[i], P[i], U[i] = w.rho_middle, w.P_post, w.v_post
		case x <= w.x4:
			Rho[i], P[i], U[i] = w.rho_post, w.P_post, w.v_post
		default:
			Rho[i], P[i], U[i] = rho_r, P_r, u_r
		}
		E[i] = P[i] / ((gamma - 1.) * Rho[i])
	}
	return
}

// fzero bisects f on [lo, hi], f must change sign over the interval
func fzero(f func(P float64) (y float64), lo, hi float64) float64 {
	var (
		tol  = 1.e-12
		flo  = f(lo)
		iter int
	)
	for hi-lo > tol && iter < 200 {
		mid := 0.5 * (lo + hi)
		fmid := f(mid)
		if (fmid < 0) == (flo < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
		iter++
	}
	return 0.5 * (lo + hi)
}

func sod_func(P float64) (y float64) {
	y = (P-P_r)*math.Sqrt((1-mu2)/(rho_r*(P+mu2*P_r))) -
		2*(math.Sqrt(gamma)/(gamma-1))*(1-math.Pow(P, (gamma-1)/(2*gamma)))
	return
}
