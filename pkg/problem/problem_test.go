package problem

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/decker502/arithmetron/pkg/config"
)

// TestGenerateTiers 测试各分数档位的运算符与操作数范围
func TestGenerateTiers(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		allowedOps map[Operator]bool
		minOperand int
		maxOperand int
	}{
		{"score 0 addition only", 0, map[Operator]bool{Add: true}, 1, 10},
		{"score 100 addition only", 100, map[Operator]bool{Add: true}, 1, 10},
		{"score 101 add/sub", 101, map[Operator]bool{Add: true, Subtract: true}, 1, 20},
		{"score 200 add/sub", 200, map[Operator]bool{Add: true, Subtract: true}, 1, 20},
		{"score 201 add/sub/mul", 201, map[Operator]bool{Add: true, Subtract: true, Multiply: true}, 2, 12},
		{"score 5000 add/sub/mul", 5000, map[Operator]bool{Add: true, Subtract: true, Multiply: true}, 2, 12},
	}

	g := DefaultGenerator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			seen := make(map[Operator]bool)
			for i := 0; i < 500; i++ {
				p := g.Generate(tt.score, rng)
				if !tt.allowedOps[p.Op] {
					t.Fatalf("operator %v not allowed at score %d", p.Op, tt.score)
				}
				seen[p.Op] = true
				if p.A < tt.minOperand || p.A > tt.maxOperand || p.B < tt.minOperand || p.B > tt.maxOperand {
					t.Fatalf("operands out of range: %+v", p)
				}
				if p.Answer != p.Op.Apply(p.A, p.B) {
					t.Fatalf("wrong answer: %+v", p)
				}
			}
			// 500 次抽样应覆盖档位内所有运算符
			if len(seen) != len(tt.allowedOps) {
				t.Errorf("expected all operators %v to appear, saw %v", tt.allowedOps, seen)
			}
		})
	}
}

// TestSubtractionNonNegative 测试减法结果非负
func TestSubtractionNonNegative(t *testing.T) {
	g := DefaultGenerator()
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		p := g.Generate(150, rng)
		if p.Op == Subtract {
			if p.A < p.B || p.Answer < 0 {
				t.Fatalf("subtraction not ordered: %+v", p)
			}
		}
	}
}

// TestGenerateDeterministic 测试相同种子生成相同序列
func TestGenerateDeterministic(t *testing.T) {
	g := DefaultGenerator()
	r1 := rand.New(rand.NewSource(7))
	r2 := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		p1 := g.Generate(250, r1)
		p2 := g.Generate(250, r2)
		if !reflect.DeepEqual(p1, p2) {
			t.Fatalf("iteration %d: %+v != %+v", i, p1, p2)
		}
	}
}

// TestProblemText 测试显示文本格式
func TestProblemText(t *testing.T) {
	g, err := NewGenerator([]config.ProblemTier{
		{Operators: []string{"*"}, MinOperand: 6, MaxOperand: 6},
	})
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	p := g.Generate(0, rand.New(rand.NewSource(1)))
	if p.Text != "6×6" || p.Answer != 36 {
		t.Errorf("Generate() = %+v, want 6×6 = 36", p)
	}

	sub, _ := NewGenerator([]config.ProblemTier{
		{Operators: []string{"-"}, MinOperand: 3, MaxOperand: 3},
	})
	if p := sub.Generate(0, rand.New(rand.NewSource(1))); p.Text != "3-3" || p.Answer != 0 {
		t.Errorf("Generate() = %+v, want 3-3 = 0", p)
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	tests := []struct {
		name  string
		tiers []config.ProblemTier
	}{
		{"empty", nil},
		{"no operators", []config.ProblemTier{{MinOperand: 1, MaxOperand: 2}}},
		{"bad operator", []config.ProblemTier{{Operators: []string{"/"}, MinOperand: 1, MaxOperand: 2}}},
		{"inverted range", []config.ProblemTier{{Operators: []string{"+"}, MinOperand: 5, MaxOperand: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGenerator(tt.tiers); err == nil {
				t.Error("NewGenerator() expected error, got nil")
			}
		})
	}
}

func TestParseOperator(t *testing.T) {
	tests := map[string]Operator{"+": Add, "-": Subtract, "−": Subtract, "*": Multiply, "×": Multiply}
	for in, want := range tests {
		got, err := ParseOperator(in)
		if err != nil || got != want {
			t.Errorf("ParseOperator(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}
