package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbtype/compiler/gen"
	"github.com/syssam/dbtype/dialect"
)

// genEnum generates the backend-independent methods of an enum and, when it
// targets a backend, the database/sql bridge.
func genEnum(h gen.GeneratorHelper, f *jen.File, e *gen.Enum) {
	recv := e.Receiver()

	// Label method
	f.Commentf("Label returns the wire label of %s, or \"\" if it is not a declared %s.", recv, e.Name)
	f.Func().Params(enumRecv(e)).Id("Label").Params().String().Block(
		jen.Switch(jen.Id(recv)).BlockFunc(func(sw *jen.Group) {
			for _, v := range e.Variants {
				sw.Case(jen.Id(v.Const)).Block(jen.Return(jen.Lit(v.Label)))
			}
			sw.Default().Block(jen.Return(jen.Lit("")))
		}),
	)

	// IsValid method
	f.Commentf("IsValid reports whether %s is a declared %s.", recv, e.Name)
	f.Func().Params(enumRecv(e)).Id("IsValid").Params().Bool().Block(
		jen.Switch(jen.Id(recv)).BlockFunc(func(sw *jen.Group) {
			cases := make([]jen.Code, 0, len(e.Variants))
			for _, v := range e.Variants {
				cases = append(cases, jen.Id(v.Const))
			}
			sw.Case(cases...).Block(jen.Return(jen.True()))
			sw.Default().Block(jen.Return(jen.False()))
		}),
	)

	// String method, unless declared by hand
	if !e.HasString {
		verb := "%d"
		if e.IsString() {
			verb = "%q"
		}
		f.Comment("String implements fmt.Stringer.")
		f.Func().Params(enumRecv(e)).Id("String").Params().String().Block(
			jen.If(jen.Id(recv).Dot("IsValid").Call()).Block(
				jen.Return(jen.Id(recv).Dot("Label").Call()),
			),
			jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit(e.Name+"("+verb+")"), enumRaw(e))),
		)
	}

	// Parse function
	f.Commentf("Parse%s returns the %s labelled label. Labels are case-sensitive.", e.Name, e.Name)
	f.Func().Id("Parse"+e.Name).Params(jen.Id("label").String()).Params(jen.Id(e.Name), jen.Error()).Block(
		jen.Switch(jen.Id("label")).BlockFunc(func(sw *jen.Group) {
			for _, v := range e.Variants {
				sw.Case(jen.Lit(v.Label)).Block(jen.Return(jen.Id(v.Const), jen.Nil()))
			}
		}),
		jen.Return(enumZero(e), rt(h, "NewUnknownVariantLabelError").Call(jen.Lit(e.Name), jen.Id("label"))),
	)

	// Values function
	f.Commentf("%sValues returns the declared %s values in declaration order.", e.Name, e.Name)
	f.Func().Id(e.Name + "Values").Params().Index().Id(e.Name).Block(
		jen.Return(jen.Index().Id(e.Name).ValuesFunc(func(vals *jen.Group) {
			for _, v := range e.Variants {
				vals.Id(v.Const)
			}
		})),
	)

	genEnumBridge(f, e)
}

// genEnumBridge generates Value and Scan delegating to the primary backend.
func genEnumBridge(f *jen.File, e *gen.Enum) {
	var encode, decode string
	switch e.Primary() {
	case "":
		return
	case dialect.Postgres:
		encode, decode = "EncodePostgres", "DecodePostgres"
	default:
		encode, decode = "EncodeMySQL", "DecodeMySQL"
	}
	recv := e.Receiver()

	f.Commentf("Value implements driver.Valuer using the %s mapping.", e.Primary())
	f.Func().Params(enumRecv(e)).Id("Value").Params().Add(driverValue()).Block(
		jen.Return(jen.Id(recv).Dot(encode).Call()),
	)

	f.Commentf("Scan implements sql.Scanner using the %s mapping.", e.Primary())
	f.Func().Params(enumPtrRecv(e)).Id("Scan").Params(jen.Id("src").Any()).Error().Block(
		jen.Return(jen.Id(recv).Dot(decode).Call(jen.Id("src"))),
	)
}
