package sql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbtype/compiler/gen"
)

// Import paths referenced by generated code.
const (
	driverPkg     = "database/sql/driver"
	sqlPkg        = "database/sql"
	pgtypePkg     = "github.com/jackc/pgx/v5/pgtype"
	jsonschemaPkg = "github.com/invopop/jsonschema"
	msgpackPkg    = "github.com/vmihailenco/msgpack/v5"
)

// driverValue is the (driver.Value, error) result list.
func driverValue() jen.Code {
	return jen.Params(jen.Qual(driverPkg, "Value"), jen.Error())
}

// rt returns a qualified identifier of the runtime support package.
func rt(h gen.GeneratorHelper, name string) *jen.Statement {
	return jen.Qual(h.RuntimePkg(), name)
}

// =============================================================================
// Enum helpers
// =============================================================================

// enumRecv returns the value receiver of e's methods.
func enumRecv(e *gen.Enum) jen.Code {
	return jen.Id(e.Receiver()).Id(e.Name)
}

// enumPtrRecv returns the pointer receiver of e's methods.
func enumPtrRecv(e *gen.Enum) jen.Code {
	return jen.Id(e.Receiver()).Op("*").Id(e.Name)
}

// enumRaw converts the receiver to its basic type, so that fmt does not call
// String on it.
func enumRaw(e *gen.Enum) jen.Code {
	recv := jen.Id(e.Receiver())
	switch {
	case e.IsString():
		return jen.String().Call(recv)
	case strings.HasPrefix(e.Underlying, "uint"):
		return jen.Uint64().Call(recv)
	default:
		return jen.Int64().Call(recv)
	}
}

// enumZero returns the zero value of e.
func enumZero(e *gen.Enum) jen.Code {
	if e.IsString() {
		return jen.Lit("")
	}
	return jen.Lit(0)
}

// invalidVariant returns the statement rejecting an undeclared value.
func invalidVariant(h gen.GeneratorHelper, e *gen.Enum, results ...jen.Code) jen.Code {
	err := rt(h, "NewInvalidVariantError").Call(jen.Lit(e.Name), enumRaw(e))
	return jen.If(jen.Op("!").Id(e.Receiver()).Dot("IsValid").Call()).Block(
		jen.Return(append(results, err)...),
	)
}

// parseInto parses label with Parse<T> and stores the result in the receiver.
func parseInto(e *gen.Enum, label jen.Code) []jen.Code {
	return []jen.Code{
		jen.List(jen.Id("parsed"), jen.Err()).Op(":=").Id("Parse" + e.Name).Call(label),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		jen.Op("*").Id(e.Receiver()).Op("=").Id("parsed"),
		jen.Return(jen.Nil()),
	}
}

// =============================================================================
// Identifier helpers
// =============================================================================

func idRecv(id *gen.Identifier) jen.Code {
	return jen.Id(id.Receiver()).Id(id.Name)
}

func idPtrRecv(id *gen.Identifier) jen.Code {
	return jen.Id(id.Receiver()).Op("*").Id(id.Name)
}

// innerType returns the Go type of the wrapped value.
func innerType(id *gen.Identifier) *jen.Statement {
	if id.Inner.PkgPath == "" {
		return jen.Id(id.Inner.Name)
	}
	return jen.Qual(id.Inner.PkgPath, id.Inner.Name)
}

// inner returns the wrapped field of the receiver.
func inner(id *gen.Identifier) *jen.Statement {
	return jen.Id(id.Receiver()).Dot(id.Field)
}

// wrap returns a composite literal of id holding v.
func wrap(id *gen.Identifier, v jen.Code) *jen.Statement {
	return jen.Id(id.Name).Values(jen.Dict{jen.Id(id.Field): v})
}

// innerText returns the textual form of the wrapped value.
func innerText(id *gen.Identifier) jen.Code {
	switch id.Inner.Kind {
	case gen.InnerInt:
		return jen.Qual("strconv", "FormatInt").Call(jen.Int64().Call(inner(id)), jen.Lit(10))
	case gen.InnerUint:
		return jen.Qual("strconv", "FormatUint").Call(jen.Uint64().Call(inner(id)), jen.Lit(10))
	case gen.InnerString:
		return inner(id)
	default:
		return inner(id).Dot("String").Call()
	}
}

// parseInner returns the statements parsing the string s into v, returning
// zero on failure.
func parseInner(id *gen.Identifier, s jen.Code, zero jen.Code) []jen.Code {
	fail := jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(zero, jen.Err()))
	switch id.Inner.Kind {
	case gen.InnerInt:
		return []jen.Code{
			jen.List(jen.Id("n"), jen.Err()).Op(":=").Qual("strconv", "ParseInt").Call(s, jen.Lit(10), jen.Lit(id.Inner.Bits)),
			fail,
			jen.Id("v").Op(":=").Add(innerType(id)).Call(jen.Id("n")),
		}
	case gen.InnerUint:
		bits := id.Inner.Bits
		if id.Unsigned63() {
			bits = 63
		}
		return []jen.Code{
			jen.List(jen.Id("n"), jen.Err()).Op(":=").Qual("strconv", "ParseUint").Call(s, jen.Lit(10), jen.Lit(bits)),
			fail,
			jen.Id("v").Op(":=").Add(innerType(id)).Call(jen.Id("n")),
		}
	case gen.InnerString:
		return []jen.Code{jen.Id("v").Op(":=").Add(s)}
	default:
		return []jen.Code{
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Qual(id.Inner.PkgPath, id.Inner.Parse).Call(s),
			fail,
		}
	}
}

// sqlValue returns the driver value of the wrapped value.
func sqlValue(id *gen.Identifier) jen.Code {
	switch {
	case id.Inner.Kind == gen.InnerValuer:
		return inner(id).Dot("Value").Call()
	case id.Inner.Kind == gen.InnerString:
		return jen.List(inner(id), jen.Nil())
	case id.Inner.Kind == gen.InnerUint && (id.Inner.Bits == 64 || id.Inner.Bits == 0) && !id.Unsigned63():
		// Accepted by the mysql driver.
		return jen.List(jen.Uint64().Call(inner(id)), jen.Nil())
	default:
		return jen.List(jen.Int64().Call(inner(id)), jen.Nil())
	}
}
