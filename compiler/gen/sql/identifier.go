package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbtype/compiler/gen"
)

// genIdentifier generates validated construction, accessors and, when the
// identifier targets a backend, the database/sql bridge.
func genIdentifier(h gen.GeneratorHelper, f *jen.File, id *gen.Identifier) {
	zero := jen.Id(id.Name).Values()

	// Parse function
	f.Commentf("Parse%s parses s as an identifier.", id.Name)
	f.Func().Id("Parse"+id.Name).Params(jen.Id("s").String()).Params(jen.Id(id.Name), jen.Error()).Block(
		append(parseInner(id, jen.Id("s"), zero),
			jen.Return(wrap(id, jen.Id("v")), jen.Nil()),
		)...,
	)

	// New function, for inner types with a generator
	if id.Inner.Generate != "" {
		f.Commentf("New%s returns a new random %s.", id.Name, id.Name)
		f.Func().Id("New" + id.Name).Params().Id(id.Name).Block(
			jen.Return(wrap(id, jen.Qual(id.Inner.PkgPath, id.Inner.Generate).Call())),
		)
	}

	if id.Dangerous {
		f.Commentf("DangerouslyNew%s wraps v without validation. Prefer Parse%s.", id.Name, id.Name)
		f.Func().Id("DangerouslyNew" + id.Name).Params(jen.Id("v").Add(innerType(id))).Id(id.Name).Block(
			jen.Return(wrap(id, jen.Id("v"))),
		)
	}

	f.Commentf("Get returns the %s wrapped by %s.", id.Inner.Ref(), id.Name)
	f.Func().Params(idRecv(id)).Id("Get").Params().Add(innerType(id)).Block(
		jen.Return(inner(id)),
	)

	if !id.HasString {
		f.Comment("String implements fmt.Stringer.")
		f.Func().Params(idRecv(id)).Id("String").Params().String().Block(
			jen.Return(innerText(id)),
		)
	}

	if id.Primary() == "" {
		return
	}

	f.Comment("Value implements driver.Valuer.")
	if id.Unsigned63() {
		f.Func().Params(idRecv(id)).Id("Value").Params().Add(driverValue()).Block(
			jen.If(jen.Uint64().Call(inner(id)).Op(">").Qual("math", "MaxInt64")).Block(
				jen.Return(jen.Nil(), rt(h, "NewOutOfRangeError").Call(jen.Lit(id.Name), jen.Uint64().Call(inner(id)))),
			),
			jen.Return(sqlValue(id)),
		)
	} else {
		f.Func().Params(idRecv(id)).Id("Value").Params().Add(driverValue()).Block(
			jen.Return(sqlValue(id)),
		)
	}

	f.Comment("Scan implements sql.Scanner.")
	if id.Inner.Kind == gen.InnerValuer {
		// The inner Scan of uuid and ulid takes NULL as the zero value.
		f.Func().Params(idPtrRecv(id)).Id("Scan").Params(jen.Id("src").Any()).Error().Block(
			jen.If(jen.Id("src").Op("==").Nil()).Block(
				jen.Return(rt(h, "NewScanError").Call(jen.Lit(id.Name), jen.Nil())),
			),
			jen.Return(inner(id).Dot("Scan").Call(jen.Id("src"))),
		)
		return
	}
	f.Func().Params(idPtrRecv(id)).Id("Scan").Params(jen.Id("src").Any()).Error().Block(
		jen.Var().Id("v").Qual(sqlPkg, "Null").Types(innerType(id)),
		jen.If(jen.Err().Op(":=").Id("v").Dot("Scan").Call(jen.Id("src")), jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Err()),
		),
		jen.If(jen.Op("!").Id("v").Dot("Valid")).Block(
			jen.Return(rt(h, "NewScanError").Call(jen.Lit(id.Name), jen.Nil())),
		),
		inner(id).Op("=").Id("v").Dot("V"),
		jen.Return(jen.Nil()),
	)
}

// genIdentifierCodec generates Encode<backend> and Decode<backend>. Wire
// values are those of the inner type for every backend.
func genIdentifierCodec(f *jen.File, id *gen.Identifier, backend string) {
	f.Commentf("Encode%s returns the %s representation of the wrapped value.", backend, backend)
	f.Func().Params(idRecv(id)).Id("Encode" + backend).Params().Add(driverValue()).Block(
		jen.Return(jen.Id(id.Receiver()).Dot("Value").Call()),
	)

	f.Commentf("Decode%s sets the wrapped value from its %s representation.", backend, backend)
	f.Func().Params(idPtrRecv(id)).Id("Decode" + backend).Params(jen.Id("src").Any()).Error().Block(
		jen.Return(jen.Id(id.Receiver()).Dot("Scan").Call(jen.Id("src"))),
	)
}
