package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, A.RawMatrix().Data, []float64{1, 4, 2, 5, 3, 6})
	}
	// AddAt accumulates
	{
		M := NewMatrix(2, 2)
		M.AddAt(0, 1, 2.5)
		M.AddAt(0, 1, 0.5)
		assert.Equal(t, 3., M.At(0, 1))
		assert.Equal(t, 0., M.At(1, 0))
	}
	// Read only
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("M")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
	}
	// Inverse and LUSolve agree
	{
		A := NewMatrix(3, 3, []float64{
			4, 1, 0,
			1, 3, 1,
			0, 1, 2,
		})
		Ainv, err := A.Inverse()
		assert.Nil(t, err)
		I := A.Mul(Ainv)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				exp := 0.
				if i == j {
					exp = 1
				}
				assert.InDelta(t, exp, I.At(i, j), 1.e-12)
			}
		}
		B := NewMatrix(3, 1, []float64{1, 2, 3})
		X := Ainv.MulVec(NewVector(3, []float64{1, 2, 3}))
		assert.True(t, A.LUSolve(B))
		assert.InDeltaSlice(t, X.Data(), B.Data(), 1.e-12)
	}
	// Singular
	{
		A := NewMatrix(2, 2, []float64{1, 2, 2, 4})
		_, err := A.Inverse()
		assert.NotNil(t, err)
		assert.False(t, A.LUSolve(NewMatrix(2, 1)))
	}
	// Rows and columns
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, -6,
		})
		assert.Equal(t, []float64{3, -6}, M.Col(2).Data())
		assert.Equal(t, []float64{4, 5, -6}, M.Row(1).Data())
		assert.Equal(t, 6., M.MaxAbs())
		assert.Equal(t, -6., M.Min())
	}
}

func TestVector(t *testing.T) {
	v := NewVector(3, []float64{3, 4, 0})
	assert.InDelta(t, 5., v.Norm(), 1.e-15)
	w := v.Copy().Scale(2)
	assert.Equal(t, []float64{3, 4, 0}, v.Data())
	assert.Equal(t, []float64{6, 8, 0}, w.Data())
	w.Subtract(v)
	assert.Equal(t, v.Data(), w.Data())
	assert.Equal(t, []float64{4, 3}, v.Subset(Index{1, 0}).Data())
	assert.False(t, IsNan(v))
	assert.Panics(t, func() { NewVector(2, []float64{1}) })
}

func TestIndex(t *testing.T) {
	assert.Equal(t, Index{3, 4, 5, 9, 10, 11}, NodalDOFs([]int{1, 3}, 3))
	assert.Equal(t, 243., POW(3, 5))
	assert.InDelta(t, 1./9., POW(3, -2), 1.e-15)
}

func TestPartitionMap(t *testing.T) {
	getHisto := func(K, Np int) (histo map[int]int) {
		pm := NewPartitionMap(Np, K)
		histo = make(map[int]int)
		for np := 0; np < pm.ParallelDegree; np++ {
			histo[pm.GetBucketDimension(np)]++
		}
		return
	}
	assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
	assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
	assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
	for maxIndex := 10; maxIndex < 200; maxIndex++ {
		pm := NewPartitionMap(5, maxIndex)
		for k := 0; k < maxIndex; k++ {
			tryCount, bn, min, max := pm.getBucketWithTryCount(k)
			mmin, mmax := pm.GetBucketRange(bn)
			assert.True(t, k >= min && k < max && min == mmin && max == mmax && tryCount <= 1)
		}
	}
	// Every index is visited exactly once
	{
		var (
			pm   = NewPartitionMap(4, 101)
			seen = make([]int, 101)
			mu   sync.Mutex
		)
		pm.RunBuckets(func(bn, k int) {
			mu.Lock()
			seen[k]++
			mu.Unlock()
		})
		for k := range seen {
			assert.Equal(t, 1, seen[k])
		}
	}
}

func TestDOK(t *testing.T) {
	var (
		A  = NewDOK(4, 4)
		Ke = NewMatrix(2, 2, []float64{
			1, -1,
			-1, 1,
		})
	)
	A.AddBlock(Index{0, 1}, Ke)
	A.AddBlock(Index{1, 2}, Ke)
	A.AddBlock(Index{2, 3}, Ke)
	assert.Equal(t, 2., A.At(1, 1))
	assert.Equal(t, -1., A.At(2, 1))
	assert.Equal(t, 0., A.At(0, 3))
	csr := A.ToCSR()
	r := csr.MulVec(NewVector(4, []float64{1, 1, 1, 1}))
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0}, r.Data(), 1.e-15)
	r = csr.MulVec(NewVector(4, []float64{0, 1, 2, 3}))
	assert.InDeltaSlice(t, []float64{-1, 0, 0, 1}, r.Data(), 1.e-15)
	assert.Panics(t, func() { A.AddBlock(Index{0}, Ke) })
}
