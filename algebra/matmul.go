package algebra

// MatMul builds the matrix product of two operands, contracting the trailing
// domain positions: vectors contract their only axis, matrices their inner
// pair, and any leading positions act as batch axes that must agree between
// two batched operands. The contraction index joins the controlled domain;
// when the two outer axes of a product would reference the same set, one is
// rewritten to a deterministically named alias so the result's index
// positions stay distinct symbols.
func MatMul(left, right Operand) (*Operation, error) {
	lDom := left.FreeDomain()
	rDom := right.FreeDomain()

	if len(lDom) == 0 {
		return nil, validationf("matrix multiplication requires at least 1 domain, left side is a scalar")
	}
	if len(rDom) == 0 {
		return nil, validationf("matrix multiplication requires at least 1 domain, right side is a scalar")
	}

	c := containerOf(lDom, rDom)
	controlled := mergeDomains(left.ControlledDomain(), right.ControlledDomain())

	newLeft, newRight, sum, err := matMulDomains(c, lDom, rDom, controlled)
	if err != nil {
		return nil, err
	}

	leftRe, err := Reindex(left, newLeft...)
	if err != nil {
		return nil, err
	}
	rightRe, err := Reindex(right, newRight...)
	if err != nil {
		return nil, err
	}
	return Sum(sum, newBinary(leftRe, "*", rightRe)), nil
}

// containerOf finds the owning container of the first real set in the
// operand domains.
func containerOf(doms ...[]IndexSet) *Container {
	for _, dom := range doms {
		for _, d := range dom {
			if d.owner() != nil {
				return d.owner()
			}
		}
	}
	return nil
}

const dimMismatch = "matrix multiplication dimensions do not match"

// matMulDomains implements the shape rule table: given the two operand
// domains it returns the reindexed operand domains and the contraction
// index.
func matMulDomains(c *Container, lDom, rDom, controlled []IndexSet) (newLeft, newRight []IndexSet, sum IndexSet, err error) {
	freshOutside := func(seed IndexSet, taken ...[]IndexSet) (IndexSet, error) {
		idx := seed
		for {
			clash := containsIndex(controlled, idx)
			for _, t := range taken {
				clash = clash || containsIndex(t, idx)
			}
			if !clash {
				return idx, nil
			}
			if c == nil {
				return nil, validationf("cannot disambiguate index %q: no container in scope", seed.Name())
			}
			next, aliasErr := c.nextAlias(idx)
			if aliasErr != nil {
				return nil, aliasErr
			}
			idx = next
		}
	}

	ln, rn := len(lDom), len(rDom)
	switch {
	case ln == 1 && rn == 1:
		// dot product
		if !sameBase(lDom[0], rDom[0]) {
			return nil, nil, nil, validationf("dot product requires the same domain on both sides")
		}
		sum, err = freshOutside(lDom[0])
		if err != nil {
			return nil, nil, nil, err
		}
		return []IndexSet{sum}, []IndexSet{sum}, sum, nil

	case ln == 2 && rn == 2:
		// plain matrix multiplication
		if !sameBase(lDom[1], rDom[0]) {
			return nil, nil, nil, validationf(dimMismatch)
		}
		leftOuter := lDom[0]
		rightOuter := rDom[1]
		if leftOuter.Name() == rightOuter.Name() {
			if leftOuter, err = aliasOf(c, leftOuter); err != nil {
				return nil, nil, nil, err
			}
		}
		sum, err = freshOutside(lDom[1], []IndexSet{leftOuter, rightOuter})
		if err != nil {
			return nil, nil, nil, err
		}
		return []IndexSet{leftOuter, sum}, []IndexSet{sum, rightOuter}, sum, nil

	case ln == 1 && rn == 2:
		// vector-matrix, vector 1-prepended
		if !sameBase(lDom[0], rDom[0]) {
			return nil, nil, nil, validationf(dimMismatch)
		}
		var rightOuter IndexSet
		if sameBase(rDom[0], rDom[1]) {
			sum, rightOuter = rDom[1], rDom[0]
		} else {
			sum, rightOuter = rDom[0], rDom[1]
		}
		sum, err = freshOutside(sum, []IndexSet{rDom[1]})
		if err != nil {
			return nil, nil, nil, err
		}
		return []IndexSet{sum}, []IndexSet{sum, rightOuter}, sum, nil

	case ln == 2 && rn == 1:
		// matrix-vector
		if !sameBase(lDom[1], rDom[0]) {
			return nil, nil, nil, validationf(dimMismatch)
		}
		sum, err = freshOutside(lDom[1], []IndexSet{lDom[0]})
		if err != nil {
			return nil, nil, nil, err
		}
		return []IndexSet{lDom[0], sum}, []IndexSet{sum}, sum, nil

	case ln == 1 && rn > 2:
		// vector times batched matrix, vector 1-prepended
		if !sameBase(lDom[0], rDom[rn-2]) {
			return nil, nil, nil, validationf(dimMismatch)
		}
		sum, err = freshOutside(lDom[0], rDom[:rn-2], []IndexSet{rDom[rn-1]})
		if err != nil {
			return nil, nil, nil, err
		}
		newRight = append(append([]IndexSet{}, rDom[:rn-2]...), sum, rDom[rn-1])
		return []IndexSet{sum}, newRight, sum, nil

	case ln > 2 && rn == 1:
		// batched matrix times vector
		if !sameBase(lDom[ln-1], rDom[0]) {
			return nil, nil, nil, validationf(dimMismatch)
		}
		sum, err = freshOutside(lDom[ln-1], lDom[:ln-1])
		if err != nil {
			return nil, nil, nil, err
		}
		newLeft = append(append([]IndexSet{}, lDom[:ln-1]...), sum)
		return newLeft, []IndexSet{sum}, sum, nil

	case ln >= 2 && rn >= 2:
		// batched matrix times batched matrix
		if !sameBase(lDom[ln-1], rDom[rn-2]) {
			return nil, nil, nil, validationf(dimMismatch)
		}
		lBatch, rBatch := lDom[:ln-2], rDom[:rn-2]
		if len(lBatch) > 0 && len(rBatch) > 0 {
			if len(lBatch) != len(rBatch) {
				return nil, nil, nil, validationf("batch dimensions do not match")
			}
			for i := range lBatch {
				if lBatch[i].Name() != rBatch[i].Name() {
					return nil, nil, nil, validationf("batch dimensions do not match")
				}
			}
		}
		leftOuter := lDom[ln-2]
		rightOuter := rDom[rn-1]
		if leftOuter.Name() == rightOuter.Name() {
			if leftOuter, err = aliasOf(c, leftOuter); err != nil {
				return nil, nil, nil, err
			}
		}
		sum, err = freshOutside(lDom[ln-1], lDom[:ln-1], rDom[:rn-2], []IndexSet{leftOuter, rightOuter})
		if err != nil {
			return nil, nil, nil, err
		}
		newLeft = append(append([]IndexSet{}, lBatch...), leftOuter, sum)
		newRight = append(append([]IndexSet{}, rBatch...), sum, rightOuter)
		return newLeft, newRight, sum, nil
	}

	return nil, nil, nil, validationf(
		"matrix multiplication for left dim %d, right dim %d is not defined", ln, rn)
}

func aliasOf(c *Container, s IndexSet) (IndexSet, error) {
	if c == nil {
		return nil, validationf("cannot disambiguate index %q: no container in scope", s.Name())
	}
	return c.nextAlias(s)
}
