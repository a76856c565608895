// rha_direct.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

// J and K contractions of one shell quadruple of spinor integrals.
//
// Notation: a block B(i,j,k,l) of G is stored column-major, i fastest, one
// component after another. tau is the Kramers partner map and
// phi(p) = phase(tau(p)). The integrals obey
//
//	G(tau q, tau p, r, s) = eta1 phi(p) phi(q) G(p, q, r, s)
//	G(p, q, tau s, tau r) = eta2 phi(r) phi(s) G(p, q, r, s)
//
// so the block (j i|k l) of a skipped quadruple is recovered from (i j|k l)
// by reversing both indices of the pair, and likewise for (i j|l k).
//
// Routines named ji*, lk* build J-type terms, jk*, li* K-type terms:
//
//	ji: vj[k,l] += G(i,j,k,l) dm[j,i]
//	lk: vj[i,j] += G(i,j,k,l) dm[l,k]
//	jk: vk[i,l] += G(i,j,k,l) dm[j,k]
//	li: vk[k,j] += G(i,j,k,l) dm[l,i]

import (
	"gonum.org/v1/gonum/mat"
)

// Workspace is per-worker scratch for density and result sub-blocks.
// It grows to the largest request and is reused across quadruples.
type Workspace struct {
	buf []complex128
}

func (w *Workspace) take(nx, ny int) ([]complex128, []complex128) {
	if w == nil {
		return make([]complex128, nx), make([]complex128, ny)
	}
	if cap(w.buf) < nx+ny {
		w.buf = make([]complex128, nx+ny)
	}
	b := w.buf[:nx+ny]
	return b[:nx:nx], b[nx:]
}

type jkCall struct {
	eri  []complex128
	dm   *mat.CDense
	out  []*mat.CDense
	g    BlockGeometry
	tao  TimeReversalMap
	ws   *Workspace
	eta1 complex128
	eta2 complex128
}

func (c *jkCall) block(ic int) []complex128 {
	n := c.g.Size()
	return c.eri[ic*n : (ic+1)*n]
}

// block0213 is the (i,k,j,l) copy that follows all components of the block.
func (c *jkCall) block0213(ic int) []complex128 {
	n := c.g.Size()
	off := len(c.out) * n
	return c.eri[off+ic*n : off+(ic+1)*n]
}

func (c *jkCall) ijDistinct() bool { return c.g.Shells[0] != c.g.Shells[1] }
func (c *jkCall) klDistinct() bool { return c.g.Shells[2] != c.g.Shells[3] }

// ---------------------------------------------------------------- J: ji -> kl

func jiS1(c *jkCall) {
	jiKL(c, false, false)
}

func jiS2ij(c *jkCall) {
	jiKL(c, c.ijDistinct(), false)
}

func jiS2kl(c *jkCall) {
	jiKL(c, false, c.klDistinct())
}

func jiS4(c *jkCall) {
	jiS2kl(c)
	if !c.ijDistinct() {
		return
	}
	g := c.g
	di, dj, dk, dl := g.Dims()
	dij, dkl := di*dj, dk*dl
	sdm, svj := c.ws.take(dij, dkl)
	// (j~i~|kl)
	c.tao.Extract(sdm, c.dm, g.I, g.J, RevBlockT)
	for ic, vj := range c.out {
		clear(svj)
		zgemvT(dij, dkl, c.eta1, c.block(ic), dij, sdm, svj)
		c.tao.BackAccumulate(vj, svj, g.K, g.L, PlainT, 1)
		// (j~i~|l~k~)
		if c.klDistinct() {
			c.tao.BackAccumulate(vj, svj, g.L, g.K, RevBlock, c.eta2)
		}
	}
}

// jiKL contracts dm[j,i] (plus the reversed (j i) pair when ij is set) and
// scatters into vj[k,l] (and the reversed (l k) location when kl is set).
func jiKL(c *jkCall, ij, kl bool) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	dij, dkl := di*dj, dk*dl
	sdm, svj := c.ws.take(dij, dkl)
	c.tao.Extract(sdm, c.dm, g.J, g.I, Plain)
	if ij {
		c.tao.ExtractAdd(sdm, c.dm, g.I, g.J, RevBlockT, c.eta1)
	}
	for ic, vj := range c.out {
		clear(svj)
		zgemvT(dij, dkl, 1, c.block(ic), dij, sdm, svj)
		c.tao.BackAccumulate(vj, svj, g.K, g.L, PlainT, 1)
		if kl {
			c.tao.BackAccumulate(vj, svj, g.L, g.K, RevBlock, c.eta2)
		}
	}
}

// ---------------------------------------------------------------- J: lk -> ij

func lkS1(c *jkCall) {
	lkIJ(c, false, false)
}

func lkS2ij(c *jkCall) {
	lkIJ(c, false, c.ijDistinct())
}

func lkS2kl(c *jkCall) {
	lkIJ(c, c.klDistinct(), false)
}

// lkS4 is lkS2kl whose result is also scattered to the reversed (j i)
// location when the first pair is not degenerate. Both skipped blocks,
// (j~i~|kl) and (j~i~|l~k~), contract against the same density as lkS2kl.
func lkS4(c *jkCall) {
	lkIJ(c, c.klDistinct(), c.ijDistinct())
}

func lkIJ(c *jkCall, kl, ij bool) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	dij, dkl := di*dj, dk*dl
	sdm, svj := c.ws.take(dkl, dij)
	c.tao.Extract(sdm, c.dm, g.L, g.K, Plain)
	if kl {
		c.tao.ExtractAdd(sdm, c.dm, g.K, g.L, RevBlockT, c.eta2)
	}
	for ic, vj := range c.out {
		clear(svj)
		zgemvN(dij, dkl, 1, c.block(ic), dij, sdm, svj)
		c.tao.BackAccumulate(vj, svj, g.I, g.J, PlainT, 1)
		if ij {
			c.tao.BackAccumulate(vj, svj, g.J, g.I, RevBlock, c.eta1)
		}
	}
}

// ---------------------------------------------------------------- K: jk -> il

func jkS1(c *jkCall) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	djk := dj * dk
	dijk := di * djk
	sdm, svk := c.ws.take(djk, di*dl)
	c.tao.Extract(sdm, c.dm, g.J, g.K, PlainT)
	for ic, vk := range c.out {
		clear(svk)
		eri := c.block(ic)
		for l := 0; l < dl; l++ {
			zgemvN(di, djk, 1, eri[l*dijk:(l+1)*dijk], di, sdm, svk[l*di:])
		}
		c.tao.BackAccumulate(vk, svk, g.I, g.L, PlainT, 1)
	}
}

func jkS2ij(c *jkCall) {
	jkS1(c)
	if c.ijDistinct() {
		jkTildeJI(c)
	}
}

func jkS2kl(c *jkCall) {
	jkS1(c)
	if c.klDistinct() {
		jkTildeLK(c)
	}
}

func jkS4(c *jkCall) {
	jkS2kl(c)
	if !c.ijDistinct() {
		return
	}
	jkTildeJI(c)
	if !c.klDistinct() {
		return
	}
	jkTildeJILK(c)
}

// (ij|l~k~): vk[i,k~] from dm[j,l~], 0213 block
func jkTildeLK(c *jkCall) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	dik, djl := di*dk, dj*dl
	sdm, svk := c.ws.take(djl, dik)
	c.tao.Extract(sdm, c.dm, g.J, g.L, RevColsT)
	for ic, vk := range c.out {
		clear(svk)
		zgemvN(dik, djl, c.eta2, c.block0213(ic), dik, sdm, svk)
		c.tao.BackAccumulate(vk, svk, g.I, g.K, RevColsT, 1)
	}
}

// (j~i~|kl): vk[j~,l] from dm[i~,k], 0213 block
func jkTildeJI(c *jkCall) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	dik, djl := di*dk, dj*dl
	sdm, svk := c.ws.take(dik, djl)
	c.tao.Extract(sdm, c.dm, g.I, g.K, RevRowsT)
	for ic, vk := range c.out {
		clear(svk)
		zgemvT(dik, djl, c.eta1, c.block0213(ic), dik, sdm, svk)
		c.tao.BackAccumulate(vk, svk, g.J, g.L, RevRowsT, 1)
	}
}

// (j~i~|l~k~): vk[j~,k~] from dm[i~,l~], one gemv per l
func jkTildeJILK(c *jkCall) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	djk := dj * dk
	dijk := di * djk
	sdm, svk := c.ws.take(di*dl, djk)
	c.tao.Extract(sdm, c.dm, g.I, g.L, RevBlockT)
	alpha := c.eta1 * c.eta2
	for ic, vk := range c.out {
		clear(svk)
		eri := c.block(ic)
		for l := 0; l < dl; l++ {
			zgemvT(di, djk, alpha, eri[l*dijk:(l+1)*dijk], di, sdm[l*di:], svk)
		}
		c.tao.BackAccumulate(vk, svk, g.J, g.K, RevBlockT, 1)
	}
}

// ---------------------------------------------------------------- K: li -> kj

func liS1(c *jkCall) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	djk := dj * dk
	dijk := di * djk
	sdm, svk := c.ws.take(di*dl, djk)
	c.tao.Extract(sdm, c.dm, g.L, g.I, Plain)
	for ic, vk := range c.out {
		clear(svk)
		eri := c.block(ic)
		for l := 0; l < dl; l++ {
			zgemvT(di, djk, 1, eri[l*dijk:(l+1)*dijk], di, sdm[l*di:], svk)
		}
		c.tao.BackAccumulate(vk, svk, g.K, g.J, Plain, 1)
	}
}

func liS2ij(c *jkCall) {
	liS1(c)
	if c.ijDistinct() {
		liTildeJI(c)
	}
}

func liS2kl(c *jkCall) {
	liS1(c)
	if c.klDistinct() {
		liTildeLK(c)
	}
}

func liS4(c *jkCall) {
	liS2kl(c)
	if !c.ijDistinct() {
		return
	}
	liTildeJI(c)
	if !c.klDistinct() {
		return
	}
	liTildeJILK(c)
}

// (ij|l~k~): vk[l~,j] from dm[k~,i], 0213 block
func liTildeLK(c *jkCall) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	dik, djl := di*dk, dj*dl
	sdm, svk := c.ws.take(dik, djl)
	c.tao.Extract(sdm, c.dm, g.K, g.I, RevRows)
	for ic, vk := range c.out {
		clear(svk)
		zgemvT(dik, djl, c.eta2, c.block0213(ic), dik, sdm, svk)
		c.tao.BackAccumulate(vk, svk, g.L, g.J, RevRows, 1)
	}
}

// (j~i~|kl): vk[k,i~] from dm[l,j~], 0213 block
func liTildeJI(c *jkCall) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	dik, djl := di*dk, dj*dl
	sdm, svk := c.ws.take(djl, dik)
	c.tao.Extract(sdm, c.dm, g.L, g.J, RevCols)
	for ic, vk := range c.out {
		clear(svk)
		zgemvN(dik, djl, c.eta1, c.block0213(ic), dik, sdm, svk)
		c.tao.BackAccumulate(vk, svk, g.K, g.I, RevCols, 1)
	}
}

// (j~i~|l~k~): vk[l~,i~] from dm[k~,j~], one gemv per l
func liTildeJILK(c *jkCall) {
	g := c.g
	di, dj, dk, dl := g.Dims()
	djk := dj * dk
	dijk := di * djk
	sdm, svk := c.ws.take(djk, di*dl)
	c.tao.Extract(sdm, c.dm, g.K, g.J, RevBlock)
	alpha := c.eta1 * c.eta2
	for ic, vk := range c.out {
		clear(svk)
		eri := c.block(ic)
		for l := 0; l < dl; l++ {
			zgemvN(di, djk, alpha, eri[l*dijk:(l+1)*dijk], di, sdm, svk[l*di:])
		}
		c.tao.BackAccumulate(vk, svk, g.L, g.I, RevBlock, 1)
	}
}
