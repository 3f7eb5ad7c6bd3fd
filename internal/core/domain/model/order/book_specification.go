package order

import (
	"errors"
	"fmt"
	"strings"

	"orchestrator/internal/pkg/errs"
	"orchestrator/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrBookSpecificationIsNotConstructed is returned when a BookSpecification was
	// not created through NewBookSpecification or RestoreBookSpecification.
	ErrBookSpecificationIsNotConstructed = errors.New("BookSpecification must be created via NewBookSpecification constructor")
)

// Price list, per copy.
var (
	pricePerPage     = decimal.RequireFromString("0.10")
	hardcoverAddOn   = decimal.RequireFromString("5.00")
	softcoverAddOn   = decimal.RequireFromString("2.00")
	glossyAddOn      = decimal.RequireFromString("1.00")
	matteAddOn       = decimal.RequireFromString("0.50")
	costDecimalPlace = int32(2)
)

// BookSpecification describes one book run: what is printed, how it is bound
// and how many copies are produced. It is an immutable value object.
//
// The estimated cost is derived once, at construction, from the other fields:
//
//	(pageCount*0.10 + coverAddOn + finishAddOn) * quantity
//
// where coverAddOn is 5.00 for Hardcover and 2.00 for Softcover, and
// finishAddOn is 1.00 for Glossy and 0.50 for Matte. All arithmetic is exact
// decimal arithmetic; the result is kept at two decimal places.
type BookSpecification struct {
	title         string
	author        string
	pageCount     int
	coverKind     CoverKind
	finishKind    FinishKind
	quantity      int
	estimatedCost decimal.Decimal

	guard guard.ConstructorGuard
}

// NewBookSpecification validates the run description and prices it.
//
// Parameters:
//   - title, author: must not be blank (surrounding whitespace is trimmed)
//   - pageCount: number of pages, at least 1
//   - cover, finish: must be a defined kind
//   - quantity: number of copies, at least 1
//
// Returns:
//   - BookSpecification: the priced specification
//   - error: every failing field, joined; use errs.ValidationFields to flatten
//
// Example:
//
//	spec, err := NewBookSpecification("Dune", "Frank Herbert", 100, Hardcover, Glossy, 2)
//	// spec.EstimatedCost() == 32.00
func NewBookSpecification(
	title, author string,
	pageCount int,
	cover CoverKind,
	finish FinishKind,
	quantity int,
) (BookSpecification, error) {
	spec := BookSpecification{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		spec.setTitle(title),
		spec.setAuthor(author),
		spec.setPageCount(pageCount),
		spec.setCoverKind(cover),
		spec.setFinishKind(finish),
		spec.setQuantity(quantity),
	); err != nil {
		return BookSpecification{}, err
	}

	spec.estimatedCost = price(spec.pageCount, spec.coverKind, spec.finishKind, spec.quantity)
	return spec, nil
}

// RestoreBookSpecification rebuilds a specification read from storage. The cost
// is recomputed from the fields; a stored cost that disagrees with the price
// list is reported as invalid data rather than trusted.
func RestoreBookSpecification(
	title, author string,
	pageCount int,
	cover CoverKind,
	finish FinishKind,
	quantity int,
	storedCost decimal.Decimal,
) (BookSpecification, error) {
	spec, err := NewBookSpecification(title, author, pageCount, cover, finish, quantity)
	if err != nil {
		return BookSpecification{}, err
	}

	if !spec.estimatedCost.Equal(storedCost) {
		return BookSpecification{}, errs.NewValueIsInvalidErrorWithCause(
			"estimatedCost",
			fmt.Errorf("stored cost %s does not match computed cost %s", storedCost.StringFixed(costDecimalPlace), spec.EstimatedCostString()),
		)
	}

	return spec, nil
}

// Validate ensures the specification was built by a constructor.
func (b BookSpecification) Validate() error {
	return b.guard.Validate(ErrBookSpecificationIsNotConstructed)
}

func (b BookSpecification) Title() string {
	return b.title
}

func (b BookSpecification) Author() string {
	return b.author
}

func (b BookSpecification) PageCount() int {
	return b.pageCount
}

func (b BookSpecification) CoverKind() CoverKind {
	return b.coverKind
}

func (b BookSpecification) FinishKind() FinishKind {
	return b.finishKind
}

func (b BookSpecification) Quantity() int {
	return b.quantity
}

// EstimatedCost returns the total price of the run.
func (b BookSpecification) EstimatedCost() decimal.Decimal {
	return b.estimatedCost
}

// EstimatedCostString renders the cost with exactly two decimal places, e.g. "7.50".
func (b BookSpecification) EstimatedCostString() string {
	return b.estimatedCost.StringFixed(costDecimalPlace)
}

func price(pageCount int, cover CoverKind, finish FinishKind, quantity int) decimal.Decimal {
	coverAddOn := softcoverAddOn
	if cover == Hardcover {
		coverAddOn = hardcoverAddOn
	}

	finishAddOn := matteAddOn
	if finish == Glossy {
		finishAddOn = glossyAddOn
	}

	perCopy := pricePerPage.Mul(decimal.NewFromInt(int64(pageCount))).
		Add(coverAddOn).
		Add(finishAddOn)

	return perCopy.Mul(decimal.NewFromInt(int64(quantity))).Round(costDecimalPlace)
}

func (b *BookSpecification) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	b.title = title
	return nil
}

func (b *BookSpecification) setAuthor(author string) error {
	author = strings.TrimSpace(author)
	if author == "" {
		return errs.NewValueIsRequiredError("author")
	}
	b.author = author
	return nil
}

func (b *BookSpecification) setPageCount(pageCount int) error {
	if pageCount < 1 {
		return errs.NewValueIsOutOfRangeError("pageCount", pageCount, 1, nil)
	}
	b.pageCount = pageCount
	return nil
}

func (b *BookSpecification) setCoverKind(cover CoverKind) error {
	if err := cover.Validate(); err != nil {
		return err
	}
	b.coverKind = cover
	return nil
}

func (b *BookSpecification) setFinishKind(finish FinishKind) error {
	if err := finish.Validate(); err != nil {
		return err
	}
	b.finishKind = finish
	return nil
}

func (b *BookSpecification) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, nil)
	}
	b.quantity = quantity
	return nil
}
